/*
Package iconpress converts per-icon SVG masters into a fixed matrix of raster
variants (five pixel sizes, three output formats), keeping an on-disk
conversion ledger so that repeated runs only touch folders that still need
work. Every icon source is mirrored as an SVG/XML pair; an operator can force
regeneration of a single already-converted icon by dropping a zero-byte
.updatesvg or .updatexml marker file into its folder.

The package provides a command line interface, to check the supported
commands type:

	$ iconpress --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"log/slog"
		"os"

		"github.com/tberndt/iconpress"
	)

	func main() {
		logger := slog.Default()
		ledger := iconpress.LoadLedger("icons", logger)
		gen := iconpress.NewGenerator(iconpress.SVGRenderer{}, logger)
		proc := iconpress.NewProcessor(ledger, gen, iconpress.AutoConfirmer{Log: logger}, logger)

		report, err := iconpress.NewRunner("icons", proc, logger).Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "conversion aborted: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("successful: %d, failed: %d\n", report.Succeeded, report.Failed)
	}
*/
package iconpress

package iconpress

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Processor drives one icon folder through discovery, marker handling, pair
// synchronization, variant generation and ledger recording. Failures are
// folder-scoped; the caller decides whether the run continues.
type Processor struct {
	Ledger    *Ledger
	Generator *Generator
	Confirm   Confirmer
	log       *slog.Logger
}

// NewProcessor wires a folder processor from its collaborators.
func NewProcessor(ledger *Ledger, gen *Generator, confirm Confirmer, logger *slog.Logger) *Processor {
	return &Processor{
		Ledger:    ledger,
		Generator: gen,
		Confirm:   confirm,
		log:       logger,
	}
}

// Process runs the full per-folder state machine. A nil return means the
// folder ended in a converted (or deliberately skipped) state.
func (p *Processor) Process(dir string) error {
	name := filepath.Base(dir)

	markers, err := FindMarkers(dir)
	if err != nil {
		return errors.Wrapf(err, "unable to scan %s for markers", name)
	}

	if len(markers) > 0 {
		// Markers only apply to already-converted icons. A marker on an
		// unledgered folder is a no-op so it never blocks the run.
		if !p.Ledger.Contains(name) {
			p.log.Info("skipping folder, marker present but never converted", "folder", name)
			return nil
		}
		return p.regenerate(dir, name, markers)
	}

	if p.Ledger.Contains(name) {
		p.log.Info("skipping folder, already converted", "folder", name)
		return nil
	}

	pair, err := FindPair(dir)
	if err != nil {
		return err
	}
	if pair.Empty() {
		return &SourceMissingError{Folder: name, Reason: "no svg or xml source file found"}
	}
	if err := pair.Sync(); err != nil {
		return err
	}

	if err := p.generate(dir, name, pair); err != nil {
		return err
	}
	if err := p.Ledger.Record(name); err != nil {
		return err
	}

	p.log.Info("converted", "folder", name)
	return nil
}

// generate gates on the declared master size, soliciting operator
// acknowledgment on a size mismatch, then materializes the variant matrix.
func (p *Processor) generate(dir, name string, pair Pair) error {
	if err := CheckMasterSize(pair.SVG); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			p.log.Error("size check failed", "folder", name, "error", verr)
			p.Confirm.Confirm(name)
		}
		return err
	}
	return p.Generator.Generate(pair.SVG, dir, pair.BaseName())
}

// regenerate handles marker-driven forced regeneration. Markers are handled
// svg-kind first; each reads the folder state fresh and fails independently,
// so one marker's failure never aborts the other's attempt. A successful
// pass ends with a normal generation run over the restored master. The
// ledger entry is left untouched: the folder was converted before and stays
// recorded.
func (p *Processor) regenerate(dir, name string, markers []Marker) error {
	p.log.Info("markers found, regenerating", "folder", name, "markers", len(markers))

	var failed error
	for _, m := range markers {
		if err := p.applyMarker(dir, name, m); err != nil {
			p.log.Error("marker handling failed", "folder", name, "marker", m.Kind.String(), "error", err)
			failed = err
		}
	}
	if failed != nil {
		return failed
	}

	pair, err := FindPair(dir)
	if err != nil {
		return err
	}
	if pair.SVG == "" {
		return &SourceMissingError{Folder: name, Reason: "no svg master left after marker handling"}
	}
	if err := p.generate(dir, name, pair); err != nil {
		return err
	}

	p.log.Info("regenerated", "folder", name)
	return nil
}

// applyMarker invalidates the marker's stale side and restores it from the
// surviving mirror. The marker file is consumed on the way. Both marker
// kinds run through this one routine with swapped roles.
func (p *Processor) applyMarker(dir, name string, m Marker) error {
	pair, err := FindPair(dir)
	if err != nil {
		return err
	}

	stale, mirror := pair.SVG, pair.XML
	if m.Kind == MarkerXML {
		stale, mirror = pair.XML, pair.SVG
	}
	if stale == "" {
		return &SourceMissingError{
			Folder: name,
			Reason: "marker " + m.Kind.String() + " names a source file that does not exist",
		}
	}

	base := strings.TrimSuffix(filepath.Base(stale), filepath.Ext(stale))
	p.deleteVariants(dir, base)

	// Deleting the stale source and the marker is best-effort; a leftover
	// file only costs a redundant pass later.
	if err := os.Remove(stale); err != nil {
		p.log.Error("unable to delete stale source", "path", stale, "error", err)
	}
	if err := os.Remove(m.Path); err != nil {
		p.log.Error("unable to delete marker", "path", m.Path, "error", err)
	}

	if mirror == "" {
		return &SourceMissingError{
			Folder: name,
			Reason: "no " + m.Kind.mirrorExt() + " mirror left to rebuild from",
		}
	}
	return copyFile(mirror, mirrorPath(mirror, m.Kind.staleExt()))
}

// deleteVariants removes every previously materialized variant for base
// under each format subdirectory. A failed unlink is logged and the
// remaining files still get their attempt.
func (p *Processor) deleteVariants(dir, base string) {
	for _, format := range Formats {
		pattern := filepath.Join(dir, format, base+"_*."+format)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil {
				p.log.Error("unable to delete variant", "path", match, "error", err)
				continue
			}
			p.log.Info("deleted variant", "path", match)
		}
	}
}

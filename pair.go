package iconpress

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source file extensions of an asset pair.
const (
	ExtSVG = ".svg"
	ExtXML = ".xml"
)

// Pair holds the co-located SVG master and its XML mirror for one icon.
// Either side may be empty before synchronization; after Sync both sides
// exist, share a base name and carry byte-identical content. The XML file is
// a passive shadow copy of the SVG text, not a distinct format.
type Pair struct {
	SVG string
	XML string
}

// FindPair locates the first SVG and the first XML file inside dir, matching
// by extension case-insensitively. Folders holding more than one file per
// extension are malformed; only the first match counts.
func FindPair(dir string) (Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Pair{}, errors.Wrapf(err, "unable to read icon folder %s", dir)
	}

	var p Pair
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ExtSVG:
			if p.SVG == "" {
				p.SVG = filepath.Join(dir, entry.Name())
			}
		case ExtXML:
			if p.XML == "" {
				p.XML = filepath.Join(dir, entry.Name())
			}
		}
	}
	return p, nil
}

// Empty reports whether neither side of the pair exists.
func (p Pair) Empty() bool { return p.SVG == "" && p.XML == "" }

// BaseName returns the shared base name of the pair, derived from whichever
// side is present by stripping the file extension.
func (p Pair) BaseName() string {
	src := p.SVG
	if src == "" {
		src = p.XML
	}
	if src == "" {
		return ""
	}
	name := filepath.Base(src)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Sync synthesizes the missing side of the pair as a verbatim content copy
// of the present one, renamed to the partner extension. No-op when both
// sides already exist.
func (p *Pair) Sync() error {
	switch {
	case p.SVG != "" && p.XML == "":
		xml := mirrorPath(p.SVG, ExtXML)
		if err := copyFile(p.SVG, xml); err != nil {
			return err
		}
		p.XML = xml
	case p.XML != "" && p.SVG == "":
		svg := mirrorPath(p.XML, ExtSVG)
		if err := copyFile(p.XML, svg); err != nil {
			return err
		}
		p.SVG = svg
	}
	return nil
}

// mirrorPath swaps the extension of src for ext, keeping directory and base
// name.
func mirrorPath(src, ext string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), base+ext)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", src)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return errors.Wrapf(err, "unable to write %s", dst)
	}
	return nil
}

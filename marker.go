package iconpress

import (
	"os"
	"path/filepath"
	"strings"
)

// MarkerKind tags which side of the asset pair a marker declares stale. The
// other side is treated as authoritative during regeneration.
type MarkerKind int

const (
	// MarkerSVG marks the SVG master stale; the XML mirror rebuilds it.
	MarkerSVG MarkerKind = iota
	// MarkerXML marks the XML mirror stale; the SVG master rebuilds it.
	MarkerXML
)

// Marker file extensions. Only the extension is inspected; the base name is
// arbitrary and the file is expected to be empty.
const (
	ExtUpdateSVG = ".updatesvg"
	ExtUpdateXML = ".updatexml"
)

func (k MarkerKind) String() string {
	if k == MarkerXML {
		return ExtUpdateXML
	}
	return ExtUpdateSVG
}

// staleExt returns the extension of the source file the marker invalidates.
func (k MarkerKind) staleExt() string {
	if k == MarkerXML {
		return ExtXML
	}
	return ExtSVG
}

// mirrorExt returns the extension of the surviving side a regeneration
// rebuilds from.
func (k MarkerKind) mirrorExt() string {
	if k == MarkerXML {
		return ExtSVG
	}
	return ExtXML
}

// Marker is a zero-byte sentinel file requesting forced regeneration of an
// already-converted icon. It is created by an operator and consumed by the
// folder processor on successful handling.
type Marker struct {
	Path string
	Kind MarkerKind
}

// FindMarkers returns the update markers present in dir, svg-kind first.
// Extensions match case-insensitively and at most one marker per kind is
// reported.
func FindMarkers(dir string) ([]Marker, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var svgMarker, xmlMarker *Marker
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ExtUpdateSVG:
			if svgMarker == nil {
				svgMarker = &Marker{Path: path, Kind: MarkerSVG}
			}
		case ExtUpdateXML:
			if xmlMarker == nil {
				xmlMarker = &Marker{Path: path, Kind: MarkerXML}
			}
		}
	}

	var markers []Marker
	if svgMarker != nil {
		markers = append(markers, *svgMarker)
	}
	if xmlMarker != nil {
		markers = append(markers, *xmlMarker)
	}
	return markers, nil
}

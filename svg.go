package iconpress

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RequiredSize is the intrinsic pixel size every SVG master must declare for
// both width and height before any variant is generated.
const RequiredSize = 800

// svgRoot captures the size attributes of the root <svg> element.
type svgRoot struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

// CheckMasterSize verifies that the SVG master at path declares RequiredSize
// for both width and height. A trailing px unit suffix on either attribute
// is tolerated. Any mismatch or unusable attribute yields a ValidationError.
func CheckMasterSize(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", path)
	}

	var root svgRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return errors.Wrapf(err, "unable to parse %s", path)
	}

	if root.Width == "" || root.Height == "" {
		return &ValidationError{Path: path, Reason: "missing width or height attribute"}
	}

	w, errW := parseDimension(root.Width)
	h, errH := parseDimension(root.Height)
	if errW != nil || errH != nil {
		return &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("unparsable size attributes width=%q height=%q", root.Width, root.Height),
		}
	}

	if w != RequiredSize || h != RequiredSize {
		return &ValidationError{Path: path, Width: w, Height: h}
	}
	return nil
}

func parseDimension(attr string) (float64, error) {
	attr = strings.TrimSpace(attr)
	attr = strings.TrimSuffix(attr, "px")
	return strconv.ParseFloat(attr, 64)
}

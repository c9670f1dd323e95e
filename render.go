package iconpress

import (
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Renderer turns an SVG master into a raster image at its intrinsic
// resolution. It is the single seam between the folder pipeline and the
// rasterization backend, which keeps the pipeline testable without a real
// rasterizer.
type Renderer interface {
	Render(svgPath string) (image.Image, error)
}

// SVGRenderer rasterizes SVG files with oksvg and rasterx.
type SVGRenderer struct{}

// Render parses the SVG file and draws it once at its declared view box
// size.
func (SVGRenderer) Render(svgPath string) (image.Image, error) {
	icon, err := oksvg.ReadIcon(svgPath, oksvg.WarnErrorMode)
	if err != nil {
		return nil, &EncodeError{Path: svgPath, Err: err}
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = RequiredSize, RequiredSize
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return img, nil
}

// Package imop implements the image compositing operations used while
// encoding icon variants.
package imop

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// White is the default matte used when flattening icons for formats without
// an alpha channel.
var White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Flatten composites src over an opaque matte of the given color, dropping
// transparency. JPEG carries no alpha channel, so transparent icon regions
// are matted before the lossy encode.
func Flatten(src image.Image, matte color.Color) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	draw.Draw(dst, dst.Bounds(), image.NewUniform(matte), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)

	return dst
}

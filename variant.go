package iconpress

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	ico "github.com/biessek/golang-ico"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/tberndt/iconpress/imop"
	"github.com/tberndt/iconpress/utils"
)

// Output formats of the variant matrix. Each format owns one subdirectory
// of the icon folder and doubles as the file extension.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatICO = "ico"
)

// Formats lists the per-size sibling encodes in materialization order.
var Formats = []string{FormatPNG, FormatJPG, FormatICO}

// DefaultSizes is the target edge length matrix, in pixels.
var DefaultSizes = []int{64, 128, 256, 512, 1024}

// DefaultJPEGQuality is the fixed quality setting of the lossy encode.
const DefaultJPEGQuality = 95

// Generator materializes the size x format variant matrix for one icon.
type Generator struct {
	Renderer Renderer
	Sizes    []int
	Quality  int
	log      *slog.Logger
}

// NewGenerator returns a Generator with the default size matrix and JPEG
// quality.
func NewGenerator(r Renderer, logger *slog.Logger) *Generator {
	return &Generator{
		Renderer: r,
		Sizes:    DefaultSizes,
		Quality:  DefaultJPEGQuality,
		log:      logger,
	}
}

// Generate renders the SVG master once to an intermediate raster at its
// native resolution, then resizes and encodes the full variant matrix under
// dir. The intermediate raster is removed afterwards regardless of the
// per-variant outcome. An error means at least one encode did not
// materialize; success means the whole matrix did.
func (g *Generator) Generate(svgPath, dir, baseName string) error {
	rendered, err := g.Renderer.Render(svgPath)
	if err != nil {
		return err
	}

	tmp := filepath.Join(dir, "_temp_"+baseName+".png")
	if err := writePNG(tmp, rendered); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(tmp); err != nil {
			g.log.Warn("unable to remove intermediate raster", "path", tmp, "error", err)
		}
	}()

	master, err := imaging.Open(tmp)
	if err != nil {
		return errors.Wrapf(err, "unable to open intermediate raster %s", tmp)
	}

	for _, size := range g.Sizes {
		resized := imaging.Resize(master, size, size, imaging.Lanczos)
		for _, format := range Formats {
			if err := g.encode(resized, dir, format, baseName, size); err != nil {
				return err
			}
		}
	}
	return nil
}

// encode writes one (size, format) variant under the format's subdirectory,
// creating it when absent.
func (g *Generator) encode(img *image.NRGBA, dir, format, baseName string, size int) error {
	outDir := filepath.Join(dir, format)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, "unable to create output folder %s", outDir)
	}

	out := filepath.Join(outDir, fmt.Sprintf("%s_%d.%s", baseName, size, format))
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", out)
	}
	defer f.Close()

	switch format {
	case FormatPNG:
		err = png.Encode(f, img)
	case FormatJPG:
		quality := utils.Clamp(g.Quality, 1, 100)
		err = jpeg.Encode(f, imop.Flatten(img, imop.White), &jpeg.Options{Quality: quality})
	case FormatICO:
		err = ico.Encode(f, img)
	}
	if err != nil {
		return &EncodeError{Path: out, Err: err}
	}

	g.log.Info("created variant", "path", out)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

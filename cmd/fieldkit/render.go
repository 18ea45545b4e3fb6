package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/born-ml/fieldkit/buffer"
	"github.com/born-ml/fieldkit/field"
	"github.com/born-ml/fieldkit/marshal"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a gradient field to a BMP image through the packed pixel path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			out, _ := cmd.Flags().GetString("out")
			serial, _ := cmd.Flags().GetBool("serial")

			opts := []marshal.Option{}
			if serial {
				opts = append(opts, marshal.Sequential())
			}

			img, err := render(width, height, opts...)
			if err != nil {
				return err
			}

			if out == "-" {
				return writeImage(cmd.OutOrStdout(), img)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := writeImage(f, img); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().Int("width", 256, "Image width in pixels")
	cmd.Flags().Int("height", 256, "Image height in pixels")
	cmd.Flags().StringP("out", "o", "field.bmp", "Output file, or - for stdout")
	cmd.Flags().Bool("serial", false, "Run every pass on one goroutine")
	return cmd
}

func writeImage(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encode bmp: %w", err)
	}
	return nil
}

// render fills a (width, height) RGB field with a gradient, red along x and
// green along y, and converts it to an image with row 0 at the top.
func render(width, height int, opts ...marshal.Option) (*image.RGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	f := field.Zeros[float32](field.Shape{width, height}, field.Vector(3))
	if err := marshal.FillElement[float32](f, []float32{0, 0, 0.25}, opts...); err != nil {
		return nil, err
	}
	for idx := range f.Active() {
		f.Set(idx, 0, ramp(idx[0], width))
		f.Set(idx, 1, ramp(idx[1], height))
	}

	pixels := buffer.Make[uint32](field.Shape{height, width})
	if err := marshal.ToPackedImage[float32, uint32](f, pixels, opts...); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := marshal.UnpackPixel(pixels.At(y, x))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return img, nil
}

func ramp(i, n int) float32 {
	if n == 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

package marshal

import (
	"github.com/born-ml/fieldkit/internal/field"
	"github.com/born-ml/fieldkit/internal/parallel"
)

// PixelWord is a 32-bit packed pixel with byte lanes [0][R][G][B].
type PixelWord interface {
	~int32 | ~uint32
}

// CookImageType casts x to the float32 representation used for images.
func CookImageType[T field.Numeric](x T) float32 {
	return caster[T, float32]()(x)
}

// ToGrayscaleImage writes every active scalar element of f, cooked to
// float32, into channels 0, 1 and 2 of b. b has shape f.Shape()+(3).
func ToGrayscaleImage[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	const op = "to_grayscale_image"
	if isNil(f) || isNil(b) {
		return bindError(op, "handle", ErrNilHandle, "")
	}
	if err := checkKind(op, "field", f.Layout(), field.KindScalar); err != nil {
		return err
	}
	if err := checkExpanded(op, f.Shape(), b.Shape(), 3); err != nil {
		return err
	}

	cook, store := caster[T, float32](), caster[float32, U]()
	data, strides := b.Data(), b.Strides()
	sc := strides[len(strides)-1]
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		t := store(cook(f.At(idx, 0)))
		base := linear(strides, idx)
		data[base] = t
		data[base+sc] = t
		data[base+2*sc] = t
	})
	return nil
}

// ToVectorImage writes component p of every active vector element of f
// into channel p of b. b has shape f.Shape()+(max(n, 3)). Fields with at
// most two components get channel 2 set to zero.
func ToVectorImage[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	const op = "to_vector_image"
	if isNil(f) || isNil(b) {
		return bindError(op, "handle", ErrNilHandle, "")
	}
	if err := checkKind(op, "field", f.Layout(), field.KindVector); err != nil {
		return err
	}
	n := f.Layout().N()
	if err := checkExpanded(op, f.Shape(), b.Shape(), max(n, 3)); err != nil {
		return err
	}

	cook, store := caster[T, float32](), caster[float32, U]()
	data, strides := b.Data(), b.Strides()
	sc := strides[len(strides)-1]
	channels := func(idx field.Index) int {
		base := linear(strides, idx)
		for p := 0; p < n; p++ {
			data[base+p*sc] = store(cook(f.At(idx, p)))
		}
		return base
	}

	body := func(idx field.Index) { channels(idx) }
	if n <= 2 {
		body = func(idx field.Index) {
			base := channels(idx)
			data[base+2*sc] = 0
		}
	}
	run(op, f.Active(), buildOptions(opts), body)
	return nil
}

// ToPackedImage packs a rank-2 field of 3-component vectors into one
// PixelWord per pixel.
//
// With width = shape[0] and height = shape[1], pixel (i, j) reads source
// index (i, height-1-j), scales each channel by 255, clamps it into
// [0, 255], truncates, and stores B | G<<8 | R<<16 at linear index
// j*width + i. b holds width*height words, as rank 1 or (height, width).
// The full index space is visited, not only the active set.
//
// The byte order is fixed; big-endian consumers are not handled.
func ToPackedImage[T field.Numeric, W PixelWord](f field.Field[T], b Buffer[W], opts ...Option) error {
	const op = "to_packed_image"
	if isNil(f) || isNil(b) {
		return bindError(op, "handle", ErrNilHandle, "")
	}
	shape := f.Shape()
	if len(shape) != 2 {
		return bindError(op, "field", ErrRankMismatch, "packed images need a rank-2 field, got rank %d", len(shape))
	}
	if l := f.Layout(); l.Kind() != field.KindVector || l.N() != 3 {
		return bindError(op, "field", ErrLayoutMismatch, "packed images need vector(3) elements, got %s", l)
	}
	width, height := shape[0], shape[1]
	bs := b.Shape()
	if !bs.Equal(field.Shape{width * height}) && !bs.Equal(field.Shape{height, width}) {
		return bindError(op, "buffer", ErrShapeMismatch,
			"want [%d] or [%d %d], got %v", width*height, height, width, bs)
	}

	cook := caster[T, float32]()
	data := b.Data()
	o := buildOptions(opts)
	parallel.For(height, func(j int) {
		src := make(field.Index, 2)
		src[1] = height - 1 - j
		for i := 0; i < width; i++ {
			src[0] = i
			r := channel(cook(f.At(src, 0)))
			g := channel(cook(f.At(src, 1)))
			bl := channel(cook(f.At(src, 2)))
			data[j*width+i] = W(PackPixel(r, g, bl))
		}
	}, o.cfg)
	return nil
}

// PackPixel packs one pixel as B | G<<8 | R<<16.
func PackPixel(r, g, b uint8) uint32 {
	return uint32(b) | uint32(g)<<8 | uint32(r)<<16
}

// UnpackPixel splits a packed word into its R, G and B lanes.
func UnpackPixel(w uint32) (r, g, b uint8) {
	return uint8(w >> 16), uint8(w >> 8), uint8(w)
}

// channel scales x by 255, clamps into [0, 255] and truncates.
// NaN maps to 0.
func channel(x float32) uint8 {
	v := x * 255
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

package maskmap

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance returns the linear-light Rec. 709 luminance of c in [0,1].
// Fully transparent colors report 0.
func Luminance(c color.Color) float64 {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	r, g, b := col.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// GraySource adapts an image.Image to ImageSource. The grayscale reduction
// happens once at construction: every pixel is converted to luminance and
// cached, so SampleGray is a plain buffer lookup inside the pack loop.
type GraySource struct {
	w, h int
	pix  []float32
}

// NewGraySource builds a luminance source from img.
func NewGraySource(img image.Image) *GraySource {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	gs := &GraySource{
		w:   w,
		h:   h,
		pix: make([]float32, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gs.pix[y*w+x] = float32(Luminance(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return gs
}

func (s *GraySource) Width() int  { return s.w }
func (s *GraySource) Height() int { return s.h }

// SampleGray returns the cached luminance at (x,y).
func (s *GraySource) SampleGray(x, y int) float64 {
	return float64(s.pix[y*s.w+x])
}

// UniformSource is a constant-intensity source with fixed dimensions, the
// sampling analogue of a procedural flat-color texture.
type UniformSource struct {
	W, H  int
	Value float64
}

func (s UniformSource) Width() int  { return s.W }
func (s UniformSource) Height() int { return s.H }

// SampleGray returns the constant intensity regardless of position.
func (s UniformSource) SampleGray(x, y int) float64 { return s.Value }

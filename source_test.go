package maskmap

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestGraySourceLuminance(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})

	src := NewGraySource(img)
	if src.Width() != 2 || src.Height() != 1 {
		t.Fatalf("expected 2x1, got %dx%d", src.Width(), src.Height())
	}
	if v := src.SampleGray(0, 0); v != 0 {
		t.Fatalf("expected black to sample 0, got %v", v)
	}
	if v := src.SampleGray(1, 0); math.Abs(v-1) > 1e-4 {
		t.Fatalf("expected white to sample 1, got %v", v)
	}
}

func TestGraySourceColorReduction(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})

	src := NewGraySource(img)
	r := src.SampleGray(0, 0)
	g := src.SampleGray(1, 0)
	b := src.SampleGray(2, 0)

	// Rec. 709: green carries most of the luminance, blue the least.
	if !(g > r && r > b) {
		t.Fatalf("expected g > r > b, got r=%v g=%v b=%v", r, g, b)
	}
	if math.Abs(r-0.2126) > 1e-3 || math.Abs(g-0.7152) > 1e-3 || math.Abs(b-0.0722) > 1e-3 {
		t.Fatalf("unexpected primary luminances r=%v g=%v b=%v", r, g, b)
	}
}

func TestGraySourceOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 20, 12, 21))
	img.SetGray(10, 20, color.Gray{Y: 255})

	src := NewGraySource(img)
	if src.Width() != 2 || src.Height() != 1 {
		t.Fatalf("expected 2x1, got %dx%d", src.Width(), src.Height())
	}
	if v := src.SampleGray(0, 0); math.Abs(v-1) > 1e-4 {
		t.Fatalf("expected min-corner pixel to sample 1, got %v", v)
	}
	if v := src.SampleGray(1, 0); v != 0 {
		t.Fatalf("expected unset pixel to sample 0, got %v", v)
	}
}

func TestLuminanceTransparent(t *testing.T) {
	if v := Luminance(color.NRGBA{R: 255, G: 255, B: 255, A: 0}); v != 0 {
		t.Fatalf("expected transparent color to report 0, got %v", v)
	}
}

func TestUniformSource(t *testing.T) {
	src := UniformSource{W: 7, H: 3, Value: 0.4}
	if src.Width() != 7 || src.Height() != 3 {
		t.Fatalf("unexpected dimensions %dx%d", src.Width(), src.Height())
	}
	if v := src.SampleGray(6, 2); v != 0.4 {
		t.Fatalf("expected 0.4, got %v", v)
	}
}

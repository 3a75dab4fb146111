package maskmap

import (
	"errors"
	"image"
	"image/color"
)

// DefaultSize is the output edge length used when no slot has a source.
const DefaultSize = 512

// ErrInvalidDimensions reports a source or output size with a non-positive
// width or height.
var ErrInvalidDimensions = errors.New("maskmap: invalid dimensions")

// Slot identifies one of the four packed channels.
type Slot int

const (
	// Metallic is packed into R. It is first in scan order: when several
	// slots have sources, the metallic source establishes the output size.
	Metallic Slot = iota
	// Occlusion (ambient occlusion) is packed into G.
	Occlusion
	// Detail (detail mask) is packed into B.
	Detail
	// Smoothness is packed into A, optionally inverted into roughness.
	Smoothness

	// SlotCount is the number of packed channels.
	SlotCount
)

func (s Slot) String() string {
	switch s {
	case Metallic:
		return "metallic"
	case Occlusion:
		return "occlusion"
	case Detail:
		return "detail"
	case Smoothness:
		return "smoothness"
	default:
		return "unknown"
	}
}

// ImageSource is a read-only grayscale image. SampleGray must return the
// intensity at (x,y) in [0,1]; color inputs are reduced to grayscale by the
// source implementation (see GraySource).
type ImageSource interface {
	Width() int
	Height() int
	SampleGray(x, y int) float64
}

// ChannelSpec configures one slot: an optional source, and the scalar used
// for every pixel when the source is absent (or dropped for size mismatch).
type ChannelSpec struct {
	Source   ImageSource
	Fallback float64
	Invert   bool // only meaningful on the Smoothness slot
}

// PackRequest is the full input of one pack call, one ChannelSpec per slot.
type PackRequest struct {
	Channels [SlotCount]ChannelSpec
}

// DefaultRequest returns a request with no sources and the stock fallbacks:
// metallic 0.5, occlusion 1.0, detail 0.5, smoothness 0.5.
func DefaultRequest() PackRequest {
	var req PackRequest
	req.Channels[Metallic].Fallback = 0.5
	req.Channels[Occlusion].Fallback = 1.0
	req.Channels[Detail].Fallback = 0.5
	req.Channels[Smoothness].Fallback = 0.5
	return req
}

// Sources returns the per-slot sources of the request in scan order.
func (r *PackRequest) Sources() [SlotCount]ImageSource {
	var out [SlotCount]ImageSource
	for i := range r.Channels {
		out[i] = r.Channels[i].Source
	}
	return out
}

// PackedImage is one packed RGBA mask map.
type PackedImage struct {
	W, H int
	Pix  []float32 // Interleaved RGBA in [0,1], len = W*H*4
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 4
}

// At returns the packed RGBA components at (x,y).
func (p *PackedImage) At(x, y int) (r, g, b, a float32) {
	off := pixOffset(p.W, x, y)
	return p.Pix[off], p.Pix[off+1], p.Pix[off+2], p.Pix[off+3]
}

// NRGBA quantizes the packed image to 8-bit for encoding or preview.
func (p *PackedImage) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, p.W, p.H))
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			off := pixOffset(p.W, x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(max(0, min(255, p.Pix[off]*255))),
				G: uint8(max(0, min(255, p.Pix[off+1]*255))),
				B: uint8(max(0, min(255, p.Pix[off+2]*255))),
				A: uint8(max(0, min(255, p.Pix[off+3]*255))),
			})
		}
	}
	return out
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ============ SIZE RESOLUTION ============

// Resolve determines the output dimensions for a set of per-slot sources.
// The first present slot in scan order (metallic first) establishes the
// size; with no present source the result is DefaultSize square. Present
// sources that disagree with the established size are returned in dropped
// and are composited from their fallback values instead.
func Resolve(sources [SlotCount]ImageSource) (w, h int, dropped []Slot, err error) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		if src.Width() <= 0 || src.Height() <= 0 {
			return 0, 0, nil, ErrInvalidDimensions
		}
	}

	for _, src := range sources {
		if src != nil {
			w, h = src.Width(), src.Height()
			break
		}
	}
	if w == 0 {
		return DefaultSize, DefaultSize, nil, nil
	}

	for slot := Slot(0); slot < SlotCount; slot++ {
		src := sources[slot]
		if src == nil {
			continue
		}
		if src.Width() != w || src.Height() != h {
			dropped = append(dropped, slot)
		}
	}
	return w, h, dropped, nil
}

// ============ COMPOSITING ============

// Composite fills a w×h packed image from the request. Each channel samples
// its source when present, or repeats its fallback value; the smoothness
// channel is inverted when requested. A source whose dimensions differ from
// (w,h) is ignored in favor of its fallback, matching the Resolve drop
// policy, so a mismatched slot can never read out of bounds.
func Composite(req PackRequest, w, h int) (*PackedImage, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}

	var srcs [SlotCount]ImageSource
	var fall [SlotCount]float32
	for slot := range req.Channels {
		ch := &req.Channels[slot]
		fall[slot] = float32(Clamp01(ch.Fallback))
		if ch.Source != nil && ch.Source.Width() == w && ch.Source.Height() == h {
			srcs[slot] = ch.Source
		}
	}
	invert := req.Channels[Smoothness].Invert

	out := &PackedImage{W: w, H: h, Pix: make([]float32, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := pixOffset(w, x, y)
			for slot := range srcs {
				v := fall[slot]
				if srcs[slot] != nil {
					v = float32(Clamp01(srcs[slot].SampleGray(x, y)))
				}
				out.Pix[off+slot] = v
			}
			if invert {
				out.Pix[off+3] = 1 - out.Pix[off+3]
			}
		}
	}
	return out, nil
}

// ============ PACK ============

// Pack resolves the output size and composites in one call. The returned
// slots were dropped for size mismatch and composited from their fallback
// values; callers presenting the image should surface them as warnings.
func Pack(req PackRequest) (*PackedImage, []Slot, error) {
	w, h, dropped, err := Resolve(req.Sources())
	if err != nil {
		return nil, nil, err
	}
	img, err := Composite(req, w, h)
	if err != nil {
		return nil, nil, err
	}
	return img, dropped, nil
}

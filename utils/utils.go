package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"slices"

	_ "image/jpeg"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/maskmap"
)

type FallbackMethod int

const (
	FallbackMethodDominantColor FallbackMethod = iota
	FallbackMethodKMeans
)

func (m FallbackMethod) String() string {
	switch m {
	case FallbackMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// SuggestFallback estimates a per-slot fallback value from an existing
// texture as its dominant gray level. Useful when a source is dropped or
// unassigned but should still resemble the material it came from.
func SuggestFallback(img image.Image, method FallbackMethod) float64 {
	switch method {
	case FallbackMethodKMeans:
		if v, ok := suggestKMeans(img); ok {
			return v
		}
		log.Println("fallback warning: kmeans returned no clusters, falling back to dominantcolor")
		return suggestDominant(img)
	default:
		return suggestDominant(img)
	}
}

func suggestDominant(img image.Image) float64 {
	candidates := dominantcolor.FindWeight(img, 8)
	if len(candidates) == 0 {
		// Degenerate images (fully transparent, single extreme tone)
		// suggest a neutral gray.
		return 0.5
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	return maskmap.Luminance(best.RGBA)
}

func suggestKMeans(img image.Image) (float64, bool) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return 0, false
	}

	// Subsample to keep kmeans tractable on large textures.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			_, _, _, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				maskmap.Luminance(img.At(x, y)),
			})
		}
	}
	if len(dataset) == 0 {
		return 0, false
	}

	workK := min(4, len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return 0, false
	}

	// Sort by cluster population so the dominant gray level comes first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		na := len(a.Observations)
		nb := len(b.Observations)
		if na > nb {
			return -1
		}
		if na < nb {
			return 1
		}
		return 0
	})

	center := cc[0].Center
	if len(center) == 0 {
		return 0, false
	}
	return maskmap.Clamp01(center[0]), true
}

// ChannelStats summarizes one packed channel.
type ChannelStats struct {
	Slot   maskmap.Slot
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats computes per-channel statistics of a packed image. Handy for
// spotting a slot that silently packed its fallback value everywhere.
func Stats(pi *maskmap.PackedImage) [maskmap.SlotCount]ChannelStats {
	var out [maskmap.SlotCount]ChannelStats
	n := pi.W * pi.H
	if n == 0 {
		return out
	}
	buf := make([]float64, n)
	for slot := range out {
		for i := 0; i < n; i++ {
			buf[i] = float64(pi.Pix[i*4+slot])
		}
		out[slot] = ChannelStats{
			Slot:   maskmap.Slot(slot),
			Mean:   stat.Mean(buf, nil),
			StdDev: stat.StdDev(buf, nil),
			Min:    floats.Min(buf),
			Max:    floats.Max(buf),
		}
	}
	return out
}

// PreviewImage returns an 8-bit preview of the packed image, fit inside
// maxSize when the mask map is larger. maxSize <= 0 disables scaling.
func PreviewImage(pi *maskmap.PackedImage, maxSize int) *image.NRGBA {
	img := pi.NRGBA()
	if maxSize <= 0 || (pi.W <= maxSize && pi.H <= maxSize) {
		return img
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
}

// ChannelStrip renders the four packed channels as grayscale tiles side by
// side, each scaled to tileSize, for quick inspection of what landed where.
func ChannelStrip(pi *maskmap.PackedImage, tileSize int) *image.NRGBA {
	if tileSize <= 0 {
		tileSize = 64
	}

	strip := imaging.New(tileSize*int(maskmap.SlotCount), tileSize, color.NRGBA{A: 255})
	for slot := 0; slot < int(maskmap.SlotCount); slot++ {
		tile := image.NewGray(image.Rect(0, 0, pi.W, pi.H))
		for y := 0; y < pi.H; y++ {
			for x := 0; x < pi.W; x++ {
				v := pi.Pix[(y*pi.W+x)*4+slot]
				tile.SetGray(x, y, color.Gray{Y: uint8(max(0, min(255, v*255)))})
			}
		}
		scaled := imaging.Resize(tile, tileSize, tileSize, imaging.Lanczos)
		strip = imaging.Paste(strip, scaled, image.Pt(slot*tileSize, 0))
	}
	return strip
}

// ReadImage decodes an image file. PNG and JPEG decode via the standard
// library; BMP, TIFF and WebP decoders come from golang.org/x/image.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SaveImage writes img to filename as PNG.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveMask quantizes and writes a packed mask map to filename as PNG.
func SaveMask(pi *maskmap.PackedImage, filename string) error {
	return SaveImage(pi.NRGBA(), filename)
}

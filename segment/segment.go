package segment

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/model"
)

const (
	// NDim is the number of clustered channels (r, g, b).
	NDim = 3
	// Width is the record width (r, g, b, x, y).
	Width = 5
)

// ErrNoState is returned when a result holds no iterations to paint.
var ErrNoState = errors.New("segment: result has no recorded state")

// Mode selects how clustered pixels are painted.
type Mode int

const (
	// ColorMean paints every pixel with the mean colour of its cluster.
	ColorMean Mode = iota
	// ColorPalette paints every cluster with a fixed, well separated colour.
	ColorPalette
)

func (m Mode) String() string {
	switch m {
	case ColorMean:
		return "mean"
	case ColorPalette:
		return "palette"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// FromImage returns one [r, g, b, x, y] record per pixel in row-major order.
// Colour channels are non-premultiplied 8-bit values in [0, 255].
func FromImage(img image.Image) model.Dataset {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	data := make([]float64, n*Width)
	ds := make(model.Dataset, 0, n)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := len(ds) * Width
			p := data[i : i+Width : i+Width]
			p[0], p[1], p[2] = float64(c.R), float64(c.G), float64(c.B)
			p[3], p[4] = float64(x), float64(y)
			ds = append(ds, p)
		}
	}
	return ds
}

// Segment clusters the pixels of img into k colour groups.
// The active dimension count is always NDim; a WithNDim option is overridden.
func Segment(ctx context.Context, img image.Image, k int, opts ...kmeans.Option) (*kmeans.Result, error) {
	opts = append(opts, kmeans.WithNDim(NDim))
	return kmeans.Cluster(ctx, FromImage(img), k, opts...)
}

// Recolor paints the final assignment of res into a new image with the given bounds.
func Recolor(res *kmeans.Result, bounds image.Rectangle, mode Mode) (*image.NRGBA, error) {
	if res.Iterations() == 0 {
		return nil, ErrNoState
	}
	f, err := res.Frame(res.Iterations() - 1)
	if err != nil {
		return nil, err
	}
	return RecolorFrame(f, bounds, mode)
}

// RecolorFrame paints a single recorded iteration, e.g. one step of an animation.
// Pixels outside bounds are skipped.
func RecolorFrame(f kmeans.Frame, bounds image.Rectangle, mode Mode) (*image.NRGBA, error) {
	colors, err := clusterColors(f.State.Centroids, mode)
	if err != nil {
		return nil, err
	}

	out := image.NewNRGBA(bounds)
	for _, lp := range f.Points {
		if len(lp.Record) < Width {
			return nil, &model.ErrDimensionMismatch{Context: "pixel", Index: lp.Index, Expected: Width, Actual: len(lp.Record)}
		}
		if lp.Label < 0 || lp.Label >= len(colors) {
			return nil, fmt.Errorf("%w: %d", kmeans.ErrInvalidLabel, lp.Label)
		}
		x, y := int(lp.Record[3]), int(lp.Record[4])
		if !(image.Point{X: x, Y: y}).In(bounds) {
			continue
		}
		out.SetNRGBA(x, y, colors[lp.Label])
	}
	return out, nil
}

func clusterColors(centroids model.Centroids, mode Mode) ([]color.NRGBA, error) {
	colors := make([]color.NRGBA, len(centroids))
	switch mode {
	case ColorMean:
		for j, c := range centroids {
			if len(c) != NDim {
				return nil, &model.ErrDimensionMismatch{Context: "centroid", Index: j, Expected: NDim, Actual: len(c)}
			}
			colors[j] = color.NRGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 0xff}
		}
	case ColorPalette:
		for j := range colors {
			colors[j] = Palette(j)
		}
	default:
		return nil, fmt.Errorf("segment: unknown mode %s", mode)
	}
	return colors, nil
}

// Palette returns the colour used for cluster j in ColorPalette mode.
// Hues advance by the golden angle, so neighbouring labels differ clearly.
func Palette(j int) color.NRGBA {
	const golden = 0.618033988749895
	h := math.Mod(float64(j)*golden, 1)
	r, g, b := hsv(h, 0.65, 0.95)
	return color.NRGBA{R: channel(r * 255), G: channel(g * 255), B: channel(b * 255), A: 0xff}
}

// hsv converts h, s, v in [0, 1] to r, g, b in [0, 1].
func hsv(h, s, v float64) (float64, float64, float64) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 255)))
}

// Package grid splits a composite still image into a rows-by-cols grid of
// cell images. Cut lines come from gutter detection when the image has clean
// low-variance separators, with pure arithmetic division as the guaranteed
// fallback for malformed grids.
package grid

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	_ "image/jpeg"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/DV0x/fashion-shoot-agent-sub003/pkg/util"
)

// Options tunes detection and output.
type Options struct {
	// CellWidth/CellHeight, when both positive, resize every cell to a
	// uniform size.
	CellWidth  int
	CellHeight int
	// MinGutter is the minimum width in pixels of a low-variance band for it
	// to count as a gutter. Zero means the default of 2.
	MinGutter int
	// VarianceThreshold is the maximum luminance variance for a row/column to
	// be considered gutter. Zero means the default of 100.
	VarianceThreshold float64
}

const (
	defaultMinGutter         = 2
	defaultVarianceThreshold = 100.0
)

// Cropper splits composite images.
type Cropper struct {
	logger zerolog.Logger
}

// New creates a cropper.
func New(logger zerolog.Logger) *Cropper {
	return &Cropper{logger: logger.With().Str("component", "grid").Logger()}
}

// Crop divides the image at path into rows x cols cells and writes them as
// numbered PNGs (row-major) under outDir, returning the written paths.
func (c *Cropper) Crop(path string, rows, cols int, outDir string, opts Options) ([]string, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid must be at least 1x1, got %dx%d", rows, cols)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if opts.MinGutter <= 0 {
		opts.MinGutter = defaultMinGutter
	}
	if opts.VarianceThreshold <= 0 {
		opts.VarianceThreshold = defaultVarianceThreshold
	}

	bounds := img.Bounds()
	lum := luminancePlane(img)

	xCuts := c.axisCuts(columnVariance(lum), cols, opts, "columns")
	yCuts := c.axisCuts(rowVariance(lum), rows, opts, "rows")

	if err := util.EnsureDir(outDir); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	paths := make([]string, 0, rows*cols)
	idx := 0
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			rect := image.Rect(
				bounds.Min.X+xCuts[col], bounds.Min.Y+yCuts[r],
				bounds.Min.X+xCuts[col+1], bounds.Min.Y+yCuts[r+1],
			)
			cell := cropRect(img, rect)
			if opts.CellWidth > 0 && opts.CellHeight > 0 {
				cell = resize.Resize(uint(opts.CellWidth), uint(opts.CellHeight), cell, resize.Lanczos3)
			}

			out := filepath.Join(outDir, fmt.Sprintf("cell_%03d.png", idx))
			if err := savePNG(out, cell); err != nil {
				return nil, fmt.Errorf("failed to save cell %d: %w", idx, err)
			}
			paths = append(paths, out)
			idx++
		}
	}

	c.logger.Info().
		Str("image", path).
		Int("rows", rows).
		Int("cols", cols).
		Int("cells", len(paths)).
		Msg("grid cropped")
	return paths, nil
}

// axisCuts returns parts+1 cut positions for one axis, gutter-detected when
// possible and arithmetic otherwise.
func (c *Cropper) axisCuts(variance []float64, parts int, opts Options, axis string) []int {
	if cuts, ok := gutterCuts(variance, parts, opts.VarianceThreshold, opts.MinGutter); ok {
		return cuts
	}
	c.logger.Debug().Str("axis", axis).Msg("no clean gutters, dividing arithmetically")
	return arithmeticCuts(len(variance), parts)
}

// gutterCuts looks for a low-variance band near each expected boundary and
// cuts at the band's center. Fails (false) if any boundary has no band.
func gutterCuts(variance []float64, parts int, threshold float64, minBand int) ([]int, bool) {
	n := len(variance)
	if parts < 2 || n < parts {
		return nil, false
	}

	cuts := make([]int, 0, parts+1)
	cuts = append(cuts, 0)

	// Search within a window around each arithmetic boundary so an off-grid
	// gutter elsewhere in the image cannot hijack the cut.
	window := n / (parts * 4)
	if window < minBand {
		window = minBand
	}

	for k := 1; k < parts; k++ {
		expected := k * n / parts
		lo := expected - window
		if lo < 1 {
			lo = 1
		}
		hi := expected + window
		if hi > n-1 {
			hi = n - 1
		}

		center, found := lowestBandCenter(variance[lo:hi], threshold, minBand)
		if !found {
			return nil, false
		}
		cuts = append(cuts, lo+center)
	}

	cuts = append(cuts, n)
	return cuts, true
}

// lowestBandCenter finds the center of the widest contiguous run of values
// below threshold, requiring at least minBand entries.
func lowestBandCenter(window []float64, threshold float64, minBand int) (int, bool) {
	bestStart, bestLen := 0, 0
	runStart, runLen := 0, 0
	for i, v := range window {
		if v <= threshold {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			if runLen > bestLen {
				bestStart, bestLen = runStart, runLen
			}
		} else {
			runLen = 0
		}
	}
	if bestLen < minBand {
		return 0, false
	}
	return bestStart + bestLen/2, true
}

// arithmeticCuts divides the axis evenly; always succeeds.
func arithmeticCuts(n, parts int) []int {
	cuts := make([]int, parts+1)
	for k := 0; k <= parts; k++ {
		cuts[k] = k * n / parts
	}
	return cuts
}

// luminancePlane extracts 8-bit luminance for variance scans.
func luminancePlane(img image.Image) [][]float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	plane := make([][]float64, h)
	for y := 0; y < h; y++ {
		row := make([]float64, w)
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			row[x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
		}
		plane[y] = row
	}
	return plane
}

func columnVariance(plane [][]float64) []float64 {
	if len(plane) == 0 {
		return nil
	}
	h, w := len(plane), len(plane[0])
	out := make([]float64, w)
	for x := 0; x < w; x++ {
		mean := 0.0
		for y := 0; y < h; y++ {
			mean += plane[y][x]
		}
		mean /= float64(h)
		v := 0.0
		for y := 0; y < h; y++ {
			d := plane[y][x] - mean
			v += d * d
		}
		out[x] = v / float64(h)
	}
	return out
}

func rowVariance(plane [][]float64) []float64 {
	out := make([]float64, len(plane))
	for y, row := range plane {
		mean := 0.0
		for _, v := range row {
			mean += v
		}
		mean /= float64(len(row))
		v := 0.0
		for _, p := range row {
			d := p - mean
			v += d * d
		}
		out[y] = v / float64(len(row))
	}
	return out
}

func cropRect(img image.Image, rect image.Rectangle) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

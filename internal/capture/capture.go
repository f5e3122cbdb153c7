// Package capture persists the last frame of a session when the host exits.
package capture

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/lox/fingerhunt/internal/fileutil"
	"github.com/lox/fingerhunt/internal/game"
)

var (
	background = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	targetFill = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	tipFill    = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	hotspot    = color.RGBA{R: 60, G: 200, B: 120, A: 255}
)

// Save writes frame as a PNG at path and as JSON next to it, sharing the
// base name. Both writes are atomic.
func Save(path string, frame game.Frame) error {
	if err := WritePNG(path, frame); err != nil {
		return err
	}
	return WriteJSON(SidecarPath(path), frame)
}

// SidecarPath returns the JSON path that accompanies a PNG capture.
func SidecarPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
}

// WritePNG rasterizes the frame's circles onto a field-sized canvas.
// Text is left to the live display.
func WritePNG(path string, frame game.Frame) error {
	img := Render(frame)
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	return nil
}

// WriteJSON writes the frame description.
func WriteJSON(path string, frame game.Frame) error {
	data, err := json.MarshalIndent(frame, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// Render draws the frame into a new image. Each side is clamped to
// [1, game.MaxFieldExtent].
func Render(frame game.Frame) *image.RGBA {
	w := clampExtent(frame.Bounds.Width)
	h := clampExtent(frame.Bounds.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, background)

	if frame.Target != nil {
		disc(img, *frame.Target, targetFill)
	}
	if frame.Hotspot != nil {
		disc(img, *frame.Hotspot, hotspot)
	}
	if frame.Highlight != nil {
		disc(img, *frame.Highlight, tipFill)
	}
	return img
}

func clampExtent(v int) int {
	return min(max(v, 1), game.MaxFieldExtent)
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	row := img.Pix[:b.Dx()*4]
	for i := 0; i < len(row); i += 4 {
		row[0+i], row[1+i], row[2+i], row[3+i] = c.R, c.G, c.B, c.A
	}
	for y := 1; y < b.Dy(); y++ {
		copy(img.Pix[y*img.Stride:], row)
	}
}

func disc(img *image.RGBA, c game.Circle, col color.RGBA) {
	r := c.Radius
	area := image.Rect(c.X-r, c.Y-r, c.X+r+1, c.Y+r+1).Intersect(img.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

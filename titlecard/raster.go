package titlecard

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontPaths are tried in order before the embedded font.
var DefaultFontPaths = []string{
	"arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

// RasterRenderer draws cards in-process. A missing font is never an error:
// it falls back to the embedded Go Bold face, then to a fixed bitmap face.
type RasterRenderer struct {
	FontPaths []string
	Logger    *slog.Logger

	once sync.Once
	face font.Face
}

func (r *RasterRenderer) RenderTitle(ctx context.Context, caption, background, dest string) (string, error) {
	bg, err := ParseColor(background)
	if err != nil {
		return "", err
	}

	img := r.draw(caption, bg)

	err = withDirLock(dest, func() error {
		f, err := os.Create(dest)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		return "", fmt.Errorf("failed to write title card %s: %w", dest, err)
	}

	r.logger().Debug("title card rendered", "path", dest, "caption", caption)
	return filepath.Abs(dest)
}

func (r *RasterRenderer) draw(caption string, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	m := frameMargin(Width, Height)
	box := image.Rect(m, m, Width-m, Height-m)
	for _, edge := range []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+FrameThickness),
		image.Rect(box.Min.X, box.Max.Y-FrameThickness, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+FrameThickness, box.Max.Y),
		image.Rect(box.Max.X-FrameThickness, box.Min.Y, box.Max.X, box.Max.Y),
	} {
		draw.Draw(img, edge, image.White, image.Point{}, draw.Src)
	}

	if caption == "" {
		return img
	}

	face := r.loadFace()
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	metrics := face.Metrics()
	textWidth := d.MeasureString(caption).Ceil()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	x := (Width - textWidth) / 2
	y := (Height-textHeight)/2 + metrics.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(caption)
	return img
}

func (r *RasterRenderer) loadFace() font.Face {
	r.once.Do(func() {
		paths := r.FontPaths
		if paths == nil {
			paths = DefaultFontPaths
		}
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			face, err := newFace(data)
			if err != nil {
				r.logger().Warn("unusable font", "path", path, "error", err)
				continue
			}
			r.face = face
			return
		}

		face, err := newFace(gobold.TTF)
		if err != nil {
			r.logger().Warn("embedded font unavailable, using bitmap face", "error", err)
			r.face = basicfont.Face7x13
			return
		}
		r.logger().Debug("no configured font found, using embedded Go Bold")
		r.face = face
	})
	return r.face
}

func newFace(data []byte) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (r *RasterRenderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

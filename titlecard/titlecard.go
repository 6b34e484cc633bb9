// Package titlecard draws title card images: a caption centered on a solid
// background inside a white frame, 1920x1080 PNG.
package titlecard

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"cutxml/cuterr"
)

const (
	Width  = 1920
	Height = 1080

	// FontSize is the caption size in points at 72 DPI.
	FontSize = 80
	// FrameThickness is the stroke of the frame box in pixels.
	FrameThickness = 8
	// FrameMarginPercent insets the frame box from the shorter image side.
	FrameMarginPercent = 8
)

// Renderer draws a card for caption on background and writes it to dest,
// returning the path to reference from the timeline.
type Renderer interface {
	RenderTitle(ctx context.Context, caption, background, dest string) (string, error)
}

// ParseColor accepts #RRGGBB or #RGB, with or without the leading #.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return color.RGBA{}, cuterr.Formatf("invalid background color %q", s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, cuterr.Formatf("invalid background color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// frameMargin is the inset of the frame box for a w x h card.
func frameMargin(w, h int) int {
	return min(w, h) * FrameMarginPercent / 100
}

// lockPath names the lock file for dir. It lives in the temp directory so
// the title card directory only ever holds images.
func lockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs)))
	return filepath.Join(os.TempDir(), "cutxml-"+id.String()+".lock"), nil
}

// withDirLock holds a cross-process lock on the directory of dest while fn
// writes into it.
func withDirLock(dest string, fn func() error) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create title card directory: %w", err)
	}
	path, err := lockPath(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve title card directory: %w", err)
	}
	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock title card directory: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

// Placeholder resolves destination paths without drawing anything.
type Placeholder struct{}

func (Placeholder) RenderTitle(ctx context.Context, caption, background, dest string) (string, error) {
	if _, err := ParseColor(background); err != nil {
		return "", err
	}
	return filepath.Abs(dest)
}

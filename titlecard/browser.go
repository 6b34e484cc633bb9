package titlecard

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cutxml/browser"
)

const sessionTimeout = 30 * time.Second

var cardPage = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
html, body { margin: 0; width: {{.Width}}px; height: {{.Height}}px; background: {{.Background}}; overflow: hidden; }
.frame { position: absolute; box-sizing: border-box; left: {{.Margin}}px; top: {{.Margin}}px; right: {{.Margin}}px; bottom: {{.Margin}}px; border: {{.Stroke}}px solid #ffffff; }
.caption { position: absolute; inset: 0; display: flex; align-items: center; justify-content: center; color: #ffffff; font: bold {{.FontSize}}px Arial, "DejaVu Sans", sans-serif; text-align: center; }
</style></head>
<body><div class="frame"></div><div class="caption">{{.Caption}}</div></body></html>`))

type cardData struct {
	Width, Height  int
	Margin, Stroke int
	FontSize       int
	Background     template.CSS
	Caption        string
}

// BrowserRenderer screenshots an HTML card in a headless browser. When no
// browser can be started it logs once and hands every card to Fallback.
type BrowserRenderer struct {
	Fallback Renderer
	Logger   *slog.Logger
	// NewSession overrides browser startup.
	NewSession func() (*browser.BrowserSession, error)

	session  *browser.BrowserSession
	disabled bool
}

func (r *BrowserRenderer) RenderTitle(ctx context.Context, caption, background, dest string) (string, error) {
	bg, err := ParseColor(background)
	if err != nil {
		return "", err
	}

	session, err := r.ensureSession()
	if err != nil {
		if r.Fallback == nil {
			return "", fmt.Errorf("browser unavailable: %w", err)
		}
		return r.Fallback.RenderTitle(ctx, caption, background, dest)
	}

	var page bytes.Buffer
	err = cardPage.Execute(&page, cardData{
		Width:      Width,
		Height:     Height,
		Margin:     frameMargin(Width, Height),
		Stroke:     FrameThickness,
		FontSize:   FontSize,
		Background: template.CSS(fmt.Sprintf("#%02x%02x%02x", bg.R, bg.G, bg.B)),
		Caption:    caption,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build title card page: %w", err)
	}

	data, err := session.ScreenshotHTML(page.String(), Width, Height)
	if err != nil {
		return "", fmt.Errorf("failed to render title card %q: %w", caption, err)
	}

	err = withDirLock(dest, func() error {
		return os.WriteFile(dest, data, 0644)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write title card %s: %w", dest, err)
	}
	r.logger().Debug("title card rendered in browser", "path", dest, "caption", caption)
	return filepath.Abs(dest)
}

func (r *BrowserRenderer) ensureSession() (*browser.BrowserSession, error) {
	if r.session != nil {
		return r.session, nil
	}
	if r.disabled {
		return nil, fmt.Errorf("browser disabled after earlier failure")
	}
	newSession := r.NewSession
	if newSession == nil {
		newSession = func() (*browser.BrowserSession, error) {
			return browser.NewBrowserSession(sessionTimeout)
		}
	}
	session, err := newSession()
	if err != nil {
		r.disabled = true
		r.logger().Warn("headless browser unavailable, falling back to raster title cards", "error", err)
		return nil, err
	}
	r.session = session
	return session, nil
}

// Close shuts down the browser if one was started.
func (r *BrowserRenderer) Close() {
	if r.session != nil {
		r.session.Close()
		r.session = nil
	}
}

func (r *BrowserRenderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

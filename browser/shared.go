package browser

import (
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserSession represents a headless browser used to rasterize HTML
type BrowserSession struct {
	Launcher *launcher.Launcher
	Browser  *rod.Browser
	Page     *rod.Page
}

// NewBrowserSession launches a headless browser and opens a blank page
func NewBrowserSession(timeout time.Duration) (*BrowserSession, error) {
	l := launcher.New().Headless(true)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("error connecting to browser: %w", err)
	}

	// Create page with panic recovery
	var page *rod.Page
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Error creating page: %v\n", r)
				return
			}
		}()
		page = browser.MustPage()
	}()

	if page == nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("failed to create page")
	}

	if timeout > 0 {
		page = page.Timeout(timeout)
	}

	return &BrowserSession{
		Launcher: l,
		Browser:  browser,
		Page:     page,
	}, nil
}

// Close cleans up the browser session
func (bs *BrowserSession) Close() {
	if bs.Page != nil {
		bs.Page.Close()
	}
	if bs.Browser != nil {
		bs.Browser.Close()
	}
	if bs.Launcher != nil {
		bs.Launcher.Cleanup()
	}
}

// ScreenshotHTML loads html into the page at width x height and returns a PNG
func (bs *BrowserSession) ScreenshotHTML(html string, width, height int) ([]byte, error) {
	err := bs.Page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("error setting viewport: %w", err)
	}

	if err := bs.Page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("error loading document: %w", err)
	}

	if err := bs.Page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("error waiting for page load: %w", err)
	}

	png, err := bs.Page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("error capturing screenshot: %w", err)
	}
	return png, nil
}

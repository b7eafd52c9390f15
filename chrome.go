package md2img

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2img/internal/fileutil"
)

// chromeBackend paints HTML with headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
//
// The browser process persists across render calls; each call opens
// and disposes its own page. Not safe for concurrent use: the owning
// Engine serializes calls.
type chromeBackend struct {
	browser *rod.Browser
	timeout time.Duration
}

// newChromeBackend creates a chromeBackend with the given timeout.
// The browser is launched lazily on the first render call.
func newChromeBackend(timeout time.Duration) *chromeBackend {
	return &chromeBackend{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (b *chromeBackend) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// RenderImage loads the document in a fresh page scoped to the
// persistent browser, waits for layout to settle, and captures a JPEG
// screenshot of the full page.
func (b *chromeBackend) RenderImage(ctx context.Context, htmlDoc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlDoc, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer cleanup()

	// Any page-level failure below drops the browser handle: the
	// process may have died mid-render, and a stale handle would make
	// the next call fail a second time before relaunching. Dropping
	// it keeps recovery to a single failed call.
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		b.browser = nil
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		b.browser = nil
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Honor a caller deadline when it is tighter than the default.
	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		b.browser = nil
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Fixed grace delay for asynchronous paint after the load event.
	time.Sleep(paintGraceDelayMs * time.Millisecond)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quality := jpegQuality
	buf, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: &quality,
	})
	if err != nil {
		b.browser = nil
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	return buf, nil
}

// Close releases the browser process. Safe to call when no browser was
// ever launched.
func (b *chromeBackend) Close() error {
	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}

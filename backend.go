package md2img

import "context"

// ImageBackend abstracts HTML-to-image painting to allow different
// backends: a local headless Chrome or a hosted render service.
type ImageBackend interface {
	// RenderImage paints a complete HTML document and returns the
	// captured image bytes (JPEG).
	RenderImage(ctx context.Context, htmlDoc string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ ImageBackend = (*chromeBackend)(nil)
	_ ImageBackend = (*serviceBackend)(nil)
)

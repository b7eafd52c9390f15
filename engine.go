package md2img

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-md2img/internal/fileutil"
)

// ImageMarker prefixes rendered results so downstream consumers can
// distinguish an encoded image from literal text, which carries no
// marker.
const ImageMarker = "base64://"

// Engine orchestrates the markdown-to-image pipeline: policy check,
// transcoding, document wrapping, backend painting, and artifact
// lifecycle. Construct one with New and pass it to callers explicitly;
// there is no package-level shared instance.
//
// An Engine is safe for concurrent use: render calls against the same
// instance are serialized internally. For parallel rendering use an
// EnginePool.
type Engine struct {
	cfg         Config
	timeout     time.Duration
	artifactDir string
	log         *slog.Logger

	mu           sync.Mutex
	backend      ImageBackend
	prevArtifact string
}

// New creates an Engine. The default configuration is ModePlain with
// threshold 200; use options to select rendering, inject a backend, or
// change the artifact directory. When no backend is injected a local
// Chrome backend is created (launched lazily on first render).
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:         DefaultConfig(),
		timeout:     defaultTimeout,
		artifactDir: filepath.Join(os.TempDir(), "md2img"),
		log:         slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	if e.backend == nil {
		e.backend = newChromeBackend(e.timeout)
	}

	return e, nil
}

// ShouldRender reports whether content would be painted to an image
// under the engine's policy. Pure predicate: callers consult it before
// deciding to call Render, but Render does not re-check it.
func (e *Engine) ShouldRender(content string) bool {
	if e.cfg.Mode == ModePlain {
		return false
	}
	if e.cfg.Threshold == 0 {
		return true
	}
	return len([]rune(content)) > e.cfg.Threshold
}

// Render converts markdown to the caller-facing result string.
//
// In ModePlain the input is returned unchanged: the string is shown as
// literal text downstream, so no transcoding or escaping applies. In
// ModeRendered the markdown is transcoded, wrapped in the document
// template with the given title, painted by the backend, persisted to
// a uniquely named artifact file, and returned as ImageMarker followed
// by the base64-encoded image bytes.
//
// The title is inserted unescaped into the document heading; do not
// pass untrusted titles without escaping them first.
//
// Backend and artifact-write failures surface as errors wrapping the
// package sentinels; callers are expected to fall back to the literal
// text. No internal retry: a dead backend session is recreated lazily
// on the next call.
func (e *Engine) Render(ctx context.Context, markdown, title string) (string, error) {
	if e.cfg.Mode == ModePlain {
		return markdown, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Stale artifact from the previous call is removed now, not at
	// artifact creation time, so deletion never races the in-progress
	// write of a concurrent call.
	e.removeStaleArtifact()

	doc := wrapDocument(title, ToHTML(markdown))

	img, err := e.backend.RenderImage(ctx, doc)
	if err != nil {
		return "", err
	}

	path, err := e.persistArtifact(img)
	if err != nil {
		return "", err
	}
	e.prevArtifact = path

	return ImageMarker + base64.StdEncoding.EncodeToString(img), nil
}

// Close deletes any pending artifact and releases the backend.
// Release failures are logged, not escalated. Safe to call when
// nothing is live, and safe to keep using the engine afterwards: the
// next ModeRendered call recreates the backend session.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeStaleArtifact()

	if e.backend == nil {
		return nil
	}
	if err := e.backend.Close(); err != nil {
		e.log.Warn("backend release failed", "error", err)
	}
	return nil
}

// removeStaleArtifact deletes the previous call's on-disk artifact.
// Not-exist errors are expected (first call, or external cleanup) and
// any other failure is non-fatal.
func (e *Engine) removeStaleArtifact() {
	if e.prevArtifact == "" {
		return
	}
	if err := os.Remove(e.prevArtifact); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.log.Warn("stale artifact removal failed", "path", e.prevArtifact, "error", err)
	}
	e.prevArtifact = ""
}

// persistArtifact writes image bytes to a uniquely named file in the
// artifact directory, creating the directory on demand. The directory
// itself is never removed by the engine.
func (e *Engine) persistArtifact(img []byte) (string, error) {
	if err := os.MkdirAll(e.artifactDir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}

	path, err := fileutil.WriteUniqueFile(e.artifactDir, "render-*.jpg", img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}
	return path, nil
}

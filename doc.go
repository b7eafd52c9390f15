// Package md2img renders Markdown to chat-attachment images using
// headless Chrome.
//
// # Quick Start
//
// Create an engine, render markdown, and close when done:
//
//	eng, err := md2img.New(md2img.WithMode(md2img.ModeRendered))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	if eng.ShouldRender(content) {
//	    result, err := eng.Render(ctx, content, "Result")
//	    // result is md2img.ImageMarker + base64 JPEG bytes
//	}
//
// In the default ModePlain, Render returns its input unchanged and
// ShouldRender always reports false. In ModeRendered, ShouldRender
// consults the configured character threshold (zero means always
// render); Render itself applies no policy, so the two are composable:
// callers that want unconditional rendering simply skip the predicate.
//
// # Rendering Pipeline
//
// A ModeRendered call runs these stages:
//
//  1. Markdown to HTML fragment via the built-in transcoder (ToHTML),
//     a deliberately small line-based subset: headings, lists, fenced
//     code, horizontal rules, bold/code/link inline markup
//  2. Fragment wrapped in a fixed styled document parameterized by title
//  3. Document painted by the backend and captured as a JPEG
//  4. Bytes persisted to a uniquely named artifact file and returned
//     base64-encoded behind ImageMarker
//
// The previous call's artifact file is deleted at the start of the
// next call, so at most one stale artifact exists between calls.
//
// # Backends
//
// The default backend drives a local headless Chrome via go-rod,
// launched lazily on the first render and reused across calls. A
// hosted render service can be used instead:
//
//	svc, err := md2img.NewServiceBackend("https://render.example/api", 0)
//	eng, err := md2img.New(
//	    md2img.WithMode(md2img.ModeRendered),
//	    md2img.WithBackend(svc),
//	)
//
// Render failures wrap the package sentinel errors (check with
// errors.Is) and the caller decides whether to fall back to literal
// text; a dead browser session is recreated on the next call.
//
// # Parallel Rendering
//
// An Engine serializes its own render calls. For parallelism, use
// EnginePool to manage multiple engines (one browser each):
//
//	pool := md2img.NewEnginePool(4, md2img.WithMode(md2img.ModeRendered))
//	defer pool.Close()
//
//	eng, err := pool.Acquire()
//	defer pool.Release(eng)
//
// # Browser Requirements
//
// Image capture requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to point at a
// pre-installed binary; sandboxing is disabled automatically in CI
// and containerized environments.
package md2img

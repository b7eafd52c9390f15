package md2img

import "fmt"

// Viewport and capture constants shared by both backends.
const (
	viewportWidth  = 800
	viewportHeight = 600

	// jpegQuality trades size for fidelity; chat attachments do not
	// need lossless output.
	jpegQuality = 85

	// paintGraceDelay lets asynchronous paint settle after the load
	// event before the screenshot is taken.
	paintGraceDelayMs = 500
)

// documentTemplate wraps a transcoded fragment in a complete HTML5
// document. Parameterized only by title and body; the typography,
// code-block styling, and link color are fixed.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  padding: 20px;
  max-width: 800px;
  margin: 0 auto;
  background: #fff;
  color: #333;
  line-height: 1.6;
}
h1, h2, h3 { color: #1a1a1a; margin-top: 1.5em; }
code {
  background: #f4f4f4;
  padding: 2px 6px;
  border-radius: 3px;
  font-family: 'Monaco', 'Menlo', monospace;
}
pre {
  background: #1e1e1e;
  color: #d4d4d4;
  padding: 15px;
  border-radius: 5px;
  overflow-x: auto;
}
pre code {
  background: none;
  padding: 0;
  color: inherit;
}
ul { padding-left: 20px; }
li { margin: 5px 0; }
hr { border: none; border-top: 1px solid #ddd; margin: 20px 0; }
a { color: #0066cc; }
</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>`

// wrapDocument builds the full document for one render call. The title
// is inserted as-is: callers must escape untrusted titles themselves.
func wrapDocument(title, body string) string {
	return fmt.Sprintf(documentTemplate, title, body)
}

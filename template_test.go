package md2img

import (
	"strings"
	"testing"
)

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	got := wrapDocument("My Title", "<p>body text</p>")

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="UTF-8">`,
		"<h1>My Title</h1>",
		"<p>body text</p>",
		"font-family",
		"pre {",
		"a { color: #0066cc; }",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("wrapDocument output missing %q", want)
		}
	}
}

func TestWrapDocument_TitleInsertedVerbatim(t *testing.T) {
	t.Parallel()

	// The template does not escape the title; callers own escaping.
	// This pins the documented boundary.
	got := wrapDocument("<b>raw</b>", "")
	if !strings.Contains(got, "<h1><b>raw</b></h1>") {
		t.Errorf("title unexpectedly transformed: %q", got)
	}
}

func TestWrapDocument_FixedTemplate(t *testing.T) {
	t.Parallel()

	// Only title and body vary between calls.
	a := wrapDocument("T", "B")
	b := wrapDocument("T", "B")
	if a != b {
		t.Error("template output not deterministic")
	}

	c := wrapDocument("other", "B")
	if strings.Replace(c, "other", "T", 1) != a {
		t.Error("template varies beyond the title substitution")
	}
}

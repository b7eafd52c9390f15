package md2img

import (
	"regexp"
	"strings"
)

// Precompiled inline patterns. Substitution order is a binding contract:
// bold before code before link. Reordering changes output for inputs
// like `**x**` where delimiters overlap. Matches are non-greedy and
// non-recursive; backslash escaping of delimiters is not supported.
var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	codePattern = regexp.MustCompile("`(.+?)`")
	linkPattern = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)
)

// ToHTML converts markdown to an HTML fragment. It is pure and total:
// any input produces a fragment, and no error paths exist.
//
// Only a fixed subset of markdown is recognized: ATX headings up to
// level three, unordered lists (- or *), fenced code blocks, horizontal
// rules (--- or ***), and inline bold, code, and links. Everything else
// becomes a paragraph.
func ToHTML(markdown string) string {
	// Escape before any structural parsing so injected markup cannot
	// survive into the rendered document.
	markdown = escapeHTML(markdown)

	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))

	inCodeBlock := false
	inList := false

	closeList := func() {
		if inList {
			inList = false
			out = append(out, "</ul>")
		}
	}

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")

		// Fence delimiter toggles verbatim mode.
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				out = append(out, "<pre><code>")
			} else {
				inCodeBlock = false
				out = append(out, "</code></pre>")
			}
			continue
		}

		if inCodeBlock {
			// Verbatim: no inline substitution inside fences.
			out = append(out, line)
			continue
		}

		switch {
		// Longest heading prefix first so "### " never matches as "# ".
		case strings.HasPrefix(line, "### "):
			closeList()
			out = append(out, "<h3>"+line[4:]+"</h3>")
		case strings.HasPrefix(line, "## "):
			closeList()
			out = append(out, "<h2>"+line[3:]+"</h2>")
		case strings.HasPrefix(line, "# "):
			closeList()
			out = append(out, "<h1>"+line[2:]+"</h1>")
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			if !inList {
				inList = true
				out = append(out, "<ul>")
			}
			// Prefix stripped only; inline substitution applies to
			// paragraph lines, not list items.
			out = append(out, "<li>"+line[2:]+"</li>")
		case line == "---" || line == "***":
			closeList()
			out = append(out, "<hr>")
		case line == "":
			closeList()
			out = append(out, "<br>")
		default:
			closeList()
			out = append(out, "<p>"+substituteInline(line)+"</p>")
		}
	}

	closeList()

	// An unterminated fence at end of input is auto-closed so the
	// fragment never leaks an open <pre> into the document template.
	if inCodeBlock {
		out = append(out, "</code></pre>")
	}

	return strings.Join(out, "\n")
}

// escapeHTML escapes the three characters that carry markup meaning.
// Single pass only: feeding already-escaped text back through will
// double-escape the ampersands.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// substituteInline applies the ordered inline substitutions to one line.
func substituteInline(line string) string {
	line = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
	line = codePattern.ReplaceAllString(line, "<code>$1</code>")
	line = linkPattern.ReplaceAllString(line, `<a href="$2">$1</a>`)
	return line
}

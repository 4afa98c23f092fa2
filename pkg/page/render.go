package page

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/sourcegraph/syntaxhighlight"
)

// Placeholder is the body of a freshly scaffolded page.
const Placeholder = "<p>Start writing your content here...</p>"

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
`

const pageTail = `
</main>
<footer>
<p><a href="../"><i>../</i></a></p>
<button class="theme-toggle" onclick="toggleTheme()">◐</button>
</footer>
<script>
function toggleTheme() {
  document.body.classList.toggle('dark');
}
</script>
</body>
</html>`

// Render fills the page template. The title is inserted verbatim.
func Render(title, date string) string {
	return RenderWithBody(title, date, Placeholder)
}

// RenderWithBody is Render with bodyHTML in place of the placeholder paragraph.
func RenderWithBody(title, date, bodyHTML string) string {
	var b strings.Builder
	b.WriteString(pageHead)
	b.WriteString("<title>" + title + "</title>\n")
	b.WriteString(`<link rel="stylesheet" href="/style.css">` + "\n")
	b.WriteString("</head>\n<body>\n<main>\n")
	b.WriteString("<h1>" + title + "</h1>\n")
	b.WriteString("<p>-</p>\n\n")
	b.WriteString(bodyHTML + "\n\n")
	b.WriteString("<time>" + date + "</time>\n")
	b.WriteString(pageTail)
	return b.String()
}

// RenderMarkdown converts markdown source into an HTML fragment for a page body.
// Fenced code blocks that name a language are syntax highlighted.
func RenderMarkdown(src []byte) (string, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML(markdown.NormalizeNewlines(src), p, renderer)

	highlighted, err := highlightCode(out)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(highlighted, "\n"), nil
}

// highlightCode rewrites language-tagged code blocks. Fragments without any
// are returned untouched.
func highlightCode(fragment []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered markdown: %w", err)
	}

	blocks := doc.Find(`code[class*="language-"]`)
	if blocks.Length() == 0 {
		return string(fragment), nil
	}

	var hlErr error
	blocks.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		code, err := syntaxhighlight.AsHTML([]byte(s.Text()))
		if err != nil {
			hlErr = fmt.Errorf("failed to highlight code block: %w", err)
			return false
		}
		s.SetHtml(string(code))
		return true
	})
	if hlErr != nil {
		return "", hlErr
	}

	return doc.Find("body").Html()
}

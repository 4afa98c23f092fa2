package listing

import (
	"path/filepath"
	"strings"

	"github.com/denysvitali/webtree/internal/models"
)

// RootTitle labels the index of the web root itself.
const RootTitle = "files/"

const indexHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1">
<style type="text/css">
* { margin: 0; padding: 0; font: inherit; color: inherit; box-sizing: border-box; }
::selection { background: #ddd; color: #000 }
:root { --lh: 1.5em }
html { margin: 0 0 0 calc(100vw - 100%); -webkit-text-size-adjust: 100%; height: 100%; }
body { font: 1em/var(--lh) monospace; padding: 16vh 2em 0; background: #f2f2f2; display: grid; grid: 1fr / minmax(auto, 64ch); justify-content: center; height: 100%; }
a { display: inline-block; text-decoration: none; padding: .16666em; margin-left: -.16666em; }
a i { border-bottom: 1px dotted }
a:active i { border: none }
footer { padding: calc(var(--lh) * 2) 0 8vh; display: flex; justify-content: space-between; align-items: center; }
h1,p { margin-bottom: var(--lh); }
table { border: none; margin-top: -.16666em }
td:first-child { padding: 0 }
td { padding: 0 3em }
tr td:last-child { padding: 0}
.theme-toggle { cursor: pointer; border: 1px solid #000; padding: 4px 8px; font-size: 0.9em; background: transparent; transition: all 0.2s; }
.theme-toggle:hover { background: #ddd; }

/* Dark theme */
body.dark { background: #1a1a1a; color: #e0e0e0; }
body.dark ::selection { background: #333; color: #fff; }
body.dark a i { border-color: #666; }
body.dark .theme-toggle { border-color: #e0e0e0; }
body.dark .theme-toggle:hover { background: #333; }

@media (max-device-width: 600px) {
  body { padding-top: 2em; justify-content: start }
  footer { padding: 2em 0; flex-direction: column; gap: 1em; align-items: flex-start; }
  a i { border-color: #888 }
}
</style>
`

const indexTail = `</table>
</main>
<footer>
<a href="../"><i>../</i></a>
<button class="theme-toggle" onclick="toggleTheme()">◐</button>
</footer>
<script>
function toggleTheme() {
  location.hash = location.hash === '#dark' ? '' : '#dark';
}
if (location.hash === '#dark') document.body.classList.add('dark');
</script>
</body>
</html>`

// PageTitle names the index of dir: its path below root with a trailing
// slash, or RootTitle for root itself and anything outside it.
func PageTitle(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return RootTitle
	}
	return filepath.ToSlash(rel) + "/"
}

// RenderIndex builds the listing page. Names are written as-is.
func RenderIndex(title string, folders, files []models.DirectoryEntry) string {
	if title == "" {
		title = RootTitle
	}

	var b strings.Builder
	b.WriteString(indexHead)
	b.WriteString("<title>" + title + "</title>\n")
	b.WriteString("</head>\n<body>\n<main>\n")
	b.WriteString("<h1>" + title + "</h1>\n")
	b.WriteString("<p>-</p>\n")
	b.WriteString("<table cellpadding=0 cellspacing=0 cols=3>\n<tbody>\n")

	for _, f := range folders {
		writeRow(&b, f.Name+"/", f.Date(), "-")
	}
	for _, f := range files {
		writeRow(&b, f.Name, f.Date(), FormatSize(f.Size))
	}

	b.WriteString(indexTail)
	return b.String()
}

func writeRow(b *strings.Builder, href, date, size string) {
	b.WriteString(`<tr><td><a href="` + href + `"><i>` + href + `</i></a>`)
	b.WriteString(`<td><time>` + date + `</time><td align=right>` + size + "\n")
}

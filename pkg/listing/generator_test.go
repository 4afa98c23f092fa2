package listing

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, root string) (*Generator, *bytes.Buffer) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var out bytes.Buffer
	return New(Options{Root: root, Exclusions: DefaultExclusions()}, logger, &out), &out
}

func readIndex(t *testing.T, dir string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	require.NoError(t, err)
	return string(b)
}

// buildSite lays out a small web root with visible, excluded and hidden parts.
func buildSite(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "about.html"), 2048)
	writeFile(t, filepath.Join(root, "style.css"), 10)
	writeFile(t, filepath.Join(root, "posts", "first.html"), 100)
	writeFile(t, filepath.Join(root, "posts", "2024", "jan.html"), 100)
	writeFile(t, filepath.Join(root, "node_modules", "lib", "x.js"), 1)
	writeFile(t, filepath.Join(root, ".git", "objects", "ab"), 1)
	writeFile(t, filepath.Join(root, "assets", ".cache", "blob"), 1)
	writeFile(t, filepath.Join(root, "assets", "logo.png"), 1500000)
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0755))
	return root
}

func TestGenerateAll(t *testing.T) {
	root := buildSite(t)
	gen, out := newTestGenerator(t, root)

	summary, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, root, summary.Root)
	assert.Equal(t, 5, summary.Directories)

	visited := []string{
		root,
		filepath.Join(root, "assets"),
		filepath.Join(root, "empty"),
		filepath.Join(root, "posts"),
		filepath.Join(root, "posts", "2024"),
	}
	for _, dir := range visited {
		assert.FileExists(t, filepath.Join(dir, IndexFileName))
		assert.Contains(t, out.String(), "Generated index for: "+dir+"\n")
	}

	pruned := []string{
		filepath.Join(root, "node_modules"),
		filepath.Join(root, "node_modules", "lib"),
		filepath.Join(root, ".git"),
		filepath.Join(root, "assets", ".cache"),
	}
	for _, dir := range pruned {
		assert.NoFileExists(t, filepath.Join(dir, IndexFileName))
		assert.NotContains(t, out.String(), "Generated index for: "+dir+"\n")
	}

	t.Run("root listing", func(t *testing.T) {
		doc := parseHTML(t, readIndex(t, root))
		assert.Equal(t, RootTitle, doc.Find("h1").Text())

		got := rows(doc)
		require.Len(t, got, 4)
		assert.Equal(t, "assets/", got[0].href)
		assert.Equal(t, "empty/", got[1].href)
		assert.Equal(t, "posts/", got[2].href)
		assert.Equal(t, "about.html", got[3].href)
		assert.Equal(t, "2K", got[3].size)
	})

	t.Run("nested listing", func(t *testing.T) {
		doc := parseHTML(t, readIndex(t, filepath.Join(root, "posts", "2024")))
		assert.Equal(t, "posts/2024/", doc.Find("title").Text())
		got := rows(doc)
		require.Len(t, got, 1)
		assert.Equal(t, "jan.html", got[0].href)
	})

	t.Run("hidden entries never listed", func(t *testing.T) {
		html := readIndex(t, filepath.Join(root, "assets"))
		assert.NotContains(t, html, ".cache")
		got := rows(parseHTML(t, html))
		require.Len(t, got, 1)
		assert.Equal(t, "logo.png", got[0].href)
		assert.Equal(t, "1M", got[0].size)
	})

	t.Run("empty directory", func(t *testing.T) {
		doc := parseHTML(t, readIndex(t, filepath.Join(root, "empty")))
		assert.Equal(t, 0, doc.Find("tr").Length())
	})
}

func TestGenerateAll_OnlyExcludedChildren(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), 1)
	writeFile(t, filepath.Join(root, ".gitignore"), 1)
	writeFile(t, filepath.Join(root, "__pycache__", "a.pyc"), 1)
	gen, _ := newTestGenerator(t, root)

	summary, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Directories)

	doc := parseHTML(t, readIndex(t, root))
	assert.Equal(t, 0, doc.Find("tr").Length())
}

func TestGenerateAll_Deterministic(t *testing.T) {
	root := buildSite(t)
	gen, _ := newTestGenerator(t, root)
	ctx := context.Background()

	// the first run creates index files, which touches directory mtimes
	_, err := gen.GenerateAll(ctx)
	require.NoError(t, err)
	_, err = gen.GenerateAll(ctx)
	require.NoError(t, err)
	first := readIndex(t, root)
	nested := readIndex(t, filepath.Join(root, "posts"))

	_, err = gen.GenerateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, readIndex(t, root))
	assert.Equal(t, nested, readIndex(t, filepath.Join(root, "posts")))
}

func TestGenerateAll_SymlinkedDirectoriesNotWalked(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "page.html"), 1)
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))
	gen, out := newTestGenerator(t, root)

	summary, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Directories)
	assert.Equal(t, 2, strings.Count(out.String(), "Generated index for:"))

	got := rows(parseHTML(t, readIndex(t, root)))
	require.Len(t, got, 2)
	assert.Equal(t, "loop/", got[0].href)
	assert.Equal(t, "real/", got[1].href)
}

func TestGenerateAll_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "sub", "a.txt"), 1)
	link := filepath.Join(t.TempDir(), "www")
	require.NoError(t, os.Symlink(target, link))
	gen, _ := newTestGenerator(t, link)

	summary, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Directories)
	assert.FileExists(t, filepath.Join(target, "sub", IndexFileName))
}

func TestGenerateAll_MissingRoot(t *testing.T) {
	gen, out := newTestGenerator(t, filepath.Join(t.TempDir(), "missing"))

	summary, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Directories)
	assert.Empty(t, out.String())
}

func TestGenerateAll_WriteFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	readOnly := filepath.Join(root, "ro")
	require.NoError(t, os.Mkdir(readOnly, 0755))
	require.NoError(t, os.Chmod(readOnly, 0555))
	t.Cleanup(func() { _ = os.Chmod(readOnly, 0755) })
	gen, _ := newTestGenerator(t, root)

	_, err := gen.GenerateAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), filepath.Join(readOnly, IndexFileName))
}

func TestGenerateAll_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "inner", "x.txt"), 1)
	writeFile(t, filepath.Join(root, "open", "y.txt"), 1)
	// writable and traversable, but not listable
	require.NoError(t, os.Chmod(locked, 0300))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })
	gen, _ := newTestGenerator(t, root)

	summary, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Directories)

	require.NoError(t, os.Chmod(locked, 0755))
	doc := parseHTML(t, readIndex(t, locked))
	assert.Equal(t, 0, doc.Find("tr").Length())
	assert.NoFileExists(t, filepath.Join(locked, "inner", IndexFileName))
	assert.FileExists(t, filepath.Join(root, "open", IndexFileName))
}

package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSS(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestProcessImports_NoImports(t *testing.T) {
	css := `.banner-title { color: red; }`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_Nested(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_grandchild.css", `.grandchild { color: blue; }`)
	writeCSS(t, dir, "_child.css", "@import \"_grandchild.css\";\n.child { color: green; }")

	result := ProcessImports("@import \"_child.css\";\n.main { color: red; }", dir, nil)

	assert.Contains(t, result, "/* imported: _child.css */")
	assert.Contains(t, result, "/* imported: _grandchild.css */")
	assert.Contains(t, result, ".grandchild")
	assert.Contains(t, result, ".main")
}

func TestProcessImports_Circular(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_a.css", "@import \"_b.css\";\n.a {}")
	writeCSS(t, dir, "_b.css", "@import \"_a.css\";\n.b {}")

	result := ProcessImports(`@import "_a.css";`, dir, nil)

	assert.Contains(t, result, "/* imported: _b.css */")
	assert.Contains(t, result, "/* circular import prevented: _a.css */")
}

func TestProcessImports_Fallbacks(t *testing.T) {
	result := ProcessImports(`@import "default.css";`, "/nonexistent", nil)
	assert.Contains(t, result, "/* imported (embedded): default.css */")
	assert.Contains(t, result, ".banner-title")

	result = ProcessImports(`@import "_base.css";`, "/nonexistent", nil)
	assert.Contains(t, result, "/* imported (embedded): _base.css */")

	result = ProcessImports(`@import "missing.css";`, "/nonexistent", nil)
	assert.Contains(t, result, "/* import failed: missing.css")
}

func TestImportRegex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`@import "file.css";`, "file.css"},
		{`@import 'file.css';`, "file.css"},
		{`@import url("file.css");`, "file.css"},
		{`@import url( 'file.css' );`, "file.css"},
		{`@import "_partial.css"`, "_partial.css"},
		{`@import   "spaced.css"  ;`, "spaced.css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := importRegex.FindStringSubmatch(tt.input)
			require.Len(t, m, 2)
			assert.Equal(t, tt.expected, m[1])
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "minimal.css", `.banner-title { color: #ff0000; }`)
	writeCSS(t, dir, "mine.css", "@import \"default.css\";\n.banner-title { font-size: 20px; }")

	th, err := Resolve("minimal", dir)
	require.NoError(t, err)
	assert.False(t, th.Bundled, "user file overrides bundled theme")
	assert.Contains(t, th.CSS, "#ff0000")

	th, err = Resolve("mine", dir)
	require.NoError(t, err)
	assert.Contains(t, th.CSS, "imported (embedded): default.css")

	th, err = Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, th.Name)
	assert.True(t, th.Bundled)

	_, err = Resolve("nope", dir)
	assert.Error(t, err)
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	th, err := Load("nope")
	assert.Error(t, err)
	require.NotNil(t, th)
	assert.Equal(t, DefaultThemeName, th.Name)
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	p := writeCSS(t, dir, "test.css", `.banner-title { color: red; }`)

	th, err := FromFile("test", p)
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	writeCSS(t, dir, "_new.css", `:root { --new: blue; }`)
	writeCSS(t, dir, "test.css", "@import \"_new.css\";\n.banner-title { color: blue; }")
	require.NoError(t, os.Chtimes(p, time.Now().Add(time.Second), time.Now().Add(time.Second)))

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, th.CSS, "/* imported: _new.css */")

	changed, err = Default().Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "default.css", `.x {}`)
	writeCSS(t, dir, "extra.css", `.x {}`)
	writeCSS(t, dir, "_partial.css", `.x {}`)
	writeCSS(t, dir, "notes.txt", ``)

	infos, err := List(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(infos))
	for _, i := range infos {
		names = append(names, i.Name)
	}
	assert.Equal(t, []string{"catppuccin", "default", "minimal", "extra"}, names)
	assert.False(t, infos[1].Bundled)
	assert.Equal(t, filepath.Join(dir, "default.css"), infos[1].Path)

	infos, err = List(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Len(t, infos, 3)
}

package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// File-producing tests need a UniDoc license key; without one they are
// skipped the same way database tests skip without TEST_DATABASE_URL.
func requireUnidocLicense(t *testing.T) {
	t.Helper()
	if os.Getenv("UNIDOC_LICENSE_API_KEY") == "" {
		t.Skip("UNIDOC_LICENSE_API_KEY not set, skipping document output test")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	rec := fullRecord()

	_, err := Render(rec, "out.pdf", Options{Format: "html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRenderPDF(t *testing.T) {
	requireUnidocLicense(t)

	out := filepath.Join(t.TempDir(), "cv.pdf")
	path, err := Render(fullRecord(), out, Options{Style: "advanced", Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, out, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderDOCX(t *testing.T) {
	requireUnidocLicense(t)

	out := filepath.Join(t.TempDir(), "cv.docx")
	path, err := Render(fullRecord(), out, Options{Style: "fastorgie", Format: "word"})
	require.NoError(t, err)
	assert.Equal(t, out, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderDOCXWithLogo(t *testing.T) {
	requireUnidocLicense(t)

	assets := t.TempDir()
	logo := image.NewRGBA(image.Rect(0, 0, 4, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, logo))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "fastorgie.png"), buf.Bytes(), 0o644))

	out := filepath.Join(t.TempDir(), "cv.docx")
	path, err := Render(fullRecord(), out, Options{Style: "fastorgie", Format: "word", AssetsDir: assets})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderCorrectsExtension(t *testing.T) {
	requireUnidocLicense(t)

	out := filepath.Join(t.TempDir(), "cv.pdf")
	path, err := Render(fullRecord(), out, Options{Format: "word"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(out), "cv.docx"), path)
}

func TestRenderEmptyRecord(t *testing.T) {
	requireUnidocLicense(t)

	rec := fullRecord()
	rec.Diplomas = nil
	rec.Certifications = nil
	rec.SkillGroups = nil
	rec.Languages = nil
	rec.Experiences = nil
	rec.EnsureDefaults()

	out := filepath.Join(t.TempDir(), "empty.pdf")
	path, err := Render(rec, out, Options{})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size(), "header-only document still renders")
}

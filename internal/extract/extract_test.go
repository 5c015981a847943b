package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUnsupportedFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"plain text", "cv.txt"},
		{"html", "cv.html"},
		{"no extension", "cv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.path)
			require.Error(t, err)

			var ffErr *FileFormatError
			require.ErrorAs(t, err, &ffErr)
			assert.Equal(t, tt.path, ffErr.Path)
		})
	}
}

func TestExtractMissingPDF(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
}

func TestExtractDOCX(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jean Dupont</w:t></w:r></w:p>
    <w:p><w:r><w:t>Consultant </w:t></w:r><w:r><w:t>Data</w:t></w:r></w:p>
    <w:p/>
    <w:p><w:r><w:t>2020 Master Informatique</w:t></w:r></w:p>
  </w:body>
</w:document>`

	path := writeDOCX(t, documentXML)
	text, err := Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont\nConsultant Data\n2020 Master Informatique\n", text)
}

func TestExtractLegacyDocExtension(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Marie Curie</w:t></w:r></w:p>
  </w:body>
</w:document>`

	// A docx archive saved with a .doc extension still extracts.
	src := writeDOCX(t, documentXML)
	path := filepath.Join(filepath.Dir(src), "cv.doc")
	require.NoError(t, os.Rename(src, path))

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Marie Curie\n", text)
}

func TestExtractBinaryDoc(t *testing.T) {
	// An OLE-era .doc is not a zip archive and fails during extraction,
	// not at format dispatch.
	path := filepath.Join(t.TempDir(), "old.doc")
	require.NoError(t, os.WriteFile(path, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0o644))

	_, err := Extract(path)
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
}

func TestExtractDOCXWithoutDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<w:styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Extract(path)
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
}

func TestExtractCorruptDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	_, err := Extract(path)
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
}

func writeDOCX(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cv.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

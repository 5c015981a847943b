package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// extractDOCX reads word/document.xml out of the DOCX archive and walks
// its XML tokens, collecting text runs. Each closed paragraph becomes a
// line, which keeps dates and institutions on separate lines the way
// the fallback extractor expects.
func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", &ExtractionError{Path: path, Cause: err}
		}
		defer rc.Close()

		text, err := walkDocumentXML(rc)
		if err != nil {
			return "", &ExtractionError{Path: path, Cause: err}
		}
		return text, nil
	}
	return "", &ExtractionError{Path: path, Cause: errors.New("word/document.xml not found in archive")}
}

func walkDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var sb strings.Builder
	var para strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteString("\t")
			case "br":
				para.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimRight(para.String(), " \t"); line != "" {
					sb.WriteString(line)
					sb.WriteString("\n")
				}
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return sb.String(), nil
}

package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

var _ Extractor = (*DOCXExtractor)(nil)

// maxZipEntrySize limits decompressed size of individual zip entries
// to prevent zip bomb attacks (100 MB).
const maxZipEntrySize = 100 << 20

// DOCXExtractor implements Extractor for DOCX documents. It streams
// OOXML tokens from word/document.xml so the full DOM tree is never
// loaded into memory.
type DOCXExtractor struct{}

// Extract extracts plain text from a DOCX document. Each w:p paragraph
// becomes one line separated by a blank line.
func (e *DOCXExtractor) Extract(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty docx content")
	}
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	docData, err := docxDocumentXML(zr)
	if err != nil {
		return "", err
	}

	decoder := xml.NewDecoder(bytes.NewReader(docData))
	var text strings.Builder
	var paragraph strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				para := strings.TrimSpace(paragraph.String())
				paragraph.Reset()
				if para == "" {
					continue
				}
				if text.Len() > 0 {
					text.WriteString("\n\n")
				}
				text.WriteString(para)
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	return strings.TrimSpace(text.String()), nil
}

// docxDocumentXML locates and reads word/document.xml from a zip reader.
func docxDocumentXML(zr *zip.Reader) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, maxZipEntrySize+1))
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		if len(data) > maxZipEntrySize {
			return nil, fmt.Errorf("zip entry %s exceeds %d byte limit", f.Name, maxZipEntrySize)
		}
		return data, nil
	}
	return nil, fmt.Errorf("missing word/document.xml")
}

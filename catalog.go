package gofds

import (
	"hash/crc32"
	"strings"
)

const (
	// CatalogSize is the payload size of the catalog block.
	CatalogSize = 224
	// CatalogLineWidth is the number of characters per catalog line.
	CatalogLineWidth = 32

	catalogCRC   = 798990613
	catalogLead  = '$'
	catalogShift = 55
)

// Catalog is the text carried by the well known catalog block.
type Catalog struct {
	text []byte
}

// RecognizeCatalog checks whether the entry is the catalog block:
// file number 0, exactly CatalogSize bytes, a known CRC-32 and a leading '$'.
// Every byte of a catalog is shifted by 55; values above 200 wrap around.
func RecognizeCatalog(entry FileEntry) (*Catalog, bool) {
	p := entry.Payload
	if entry.Number != 0 ||
		len(p) != CatalogSize ||
		crc32.ChecksumIEEE(p) != catalogCRC ||
		p[0] != catalogLead {
		return nil, false
	}

	text := make([]byte, len(p))
	for i, b := range p {
		text[i] = b + catalogShift
	}
	return &Catalog{text: text}, true
}

// Bytes returns the transformed bytes.
func (c *Catalog) Bytes() []byte {
	return append([]byte(nil), c.text...)
}

// Lines splits the text into lines of CatalogLineWidth characters.
func (c *Catalog) Lines() []string {
	var lines []string
	for start := 0; start < len(c.text); start += CatalogLineWidth {
		end := start + CatalogLineWidth
		if end > len(c.text) {
			end = len(c.text)
		}
		lines = append(lines, string(c.text[start:end]))
	}
	return lines
}

// String renders the text with a line break after every line.
func (c *Catalog) String() string {
	var b strings.Builder
	for _, line := range c.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

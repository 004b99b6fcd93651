package gofds

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Offsets inside testdata/sample.fds.
const (
	sampleFirstImage  = 37
	sampleSecondImage = 434
)

// testDump loads a file from testdata.
func testDump(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("could not open the test dump %s: %v", name, err)
	}
	return data
}

// testFile describes a file for testImage.
type testFile struct {
	number    byte
	secondary byte
	name      string
	load      uint16
	typ       FileType
	data      []byte
	// size overrides the declared size if not 0.
	size uint16
}

// testImage describes a disk image built by bytes.
type testImage struct {
	maker    byte
	title    string
	side     byte
	created  Date
	declared int
	files    []testFile
	crc      bool
	// noDirectory leaves out the directory block.
	noDirectory bool
}

func (ti testImage) gap(b *bytes.Buffer) {
	if ti.crc {
		b.Write([]byte{0xCC, 0xCC})
	}
}

// header returns the 56 byte disk header.
func (ti testImage) header() []byte {
	h := make([]byte, HeaderSize)
	copy(h, Signature)
	h[15] = ti.maker
	copy(h[16:20], []byte(ti.title+"    ")[:4])
	h[21] = ti.side
	h[25] = 0x0F
	h[31], h[32], h[33] = 0x61, 0x02, 0x21
	h[44], h[45], h[46] = ti.created.Year, ti.created.Month, ti.created.Day
	return h
}

func (ti testImage) bytes() []byte {
	var b bytes.Buffer
	b.Write(ti.header())
	if !ti.noDirectory {
		ti.gap(&b)
		b.Write([]byte{byte(BlockDirectory), byte(ti.declared)})
	}

	for _, f := range ti.files {
		ti.gap(&b)
		b.WriteByte(byte(BlockFileHeader))
		b.Write([]byte{f.number, f.secondary})
		b.Write([]byte(f.name + "        ")[:8])
		size := f.size
		if size == 0 {
			size = uint16(len(f.data))
		}
		var word [2]byte
		binary.LittleEndian.PutUint16(word[:], f.load)
		b.Write(word[:])
		binary.LittleEndian.PutUint16(word[:], size)
		b.Write(word[:])
		b.WriteByte(byte(f.typ))
		ti.gap(&b)
		b.WriteByte(byte(BlockFileData))
		b.Write(f.data)
	}
	return b.Bytes()
}

// singleProgram is a disk with a single 10 byte program.
var singleProgram = testImage{
	maker:    0x01,
	title:    "TST",
	declared: 1,
	files: []testFile{
		{number: 0, secondary: 0x00, name: "PROG", load: 0x6000, typ: Program, data: []byte("0123456789")},
	},
}

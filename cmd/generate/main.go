package main

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
)

// main for building the test dumps around testdata/catalog.bin. Can be executed using 'go generate' from the project root.
// sample.fds.xz is not generated, it is made by
//  xz -0 --check=crc32 -k testdata/sample.fds
func main() {
	dest := "testdata"

	catalog, err := os.ReadFile(filepath.Join(dest, "catalog.bin"))
	if err != nil {
		panic(err)
	}

	plain := dump(catalog, false)
	write(filepath.Join(dest, "sample.fds"), plain)
	write(filepath.Join(dest, "sample_crc.fds"), dump(catalog, true))

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(plain); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	write(filepath.Join(dest, "sample.fds.gz"), gz.Bytes())
}

func write(name string, data []byte) {
	if err := os.WriteFile(name, data, 0644); err != nil {
		panic(err)
	}
}

type file struct {
	number, secondary byte
	name              string
	load              uint16
	typ               byte
	data              []byte
}

// dump is junk, a disk with three files, padding and a disk which declares one file more than it stores.
func dump(catalog []byte, crc bool) []byte {
	program := make([]byte, 16)
	for i := range program {
		program[i] = byte(i)
	}

	var b bytes.Buffer
	b.Write(bytes.Repeat([]byte("JUNK"), 9))
	b.WriteByte(0x01)
	disk(&b, 0x01, "ZEL ", 0, 3, crc, []file{
		{0, 0x00, "KYODAKU-", 0x2800, 2, catalog},
		{1, 0x0F, "MAIN", 0x6000, 0, program},
		{2, 0x10, "CHR01", 0x0000, 1, bytes.Repeat([]byte{0x55}, 32)},
	})
	b.Write(make([]byte, 16))
	disk(&b, 0xA4, "SMB ", 1, 2, crc, []file{
		{0, 0x01, "DATA", 0xC000, 2, []byte("SMBDATA!")},
	})
	b.Write(make([]byte, 8))
	return b.Bytes()
}

func disk(b *bytes.Buffer, maker byte, title string, side byte, declared byte, crc bool, files []file) {
	gap := func() {
		if crc {
			b.Write([]byte{0xAA, 0xBB})
		}
	}

	header := make([]byte, 56)
	copy(header, "\x01*NINTENDO-HVC*")
	header[15] = maker
	copy(header[16:20], title)
	header[21] = side
	header[25] = 0x0F
	copy(header[31:34], []byte{0x61, 0x02, 0x21})
	copy(header[44:47], []byte{0x61, 0x02, 0x21})
	b.Write(header)

	gap()
	b.Write([]byte{2, declared})

	for _, f := range files {
		gap()
		b.Write([]byte{3, f.number, f.secondary})
		name := []byte(f.name + "        ")[:8]
		b.Write(name)
		var word [2]byte
		binary.LittleEndian.PutUint16(word[:], f.load)
		b.Write(word[:])
		binary.LittleEndian.PutUint16(word[:], uint16(len(f.data)))
		b.Write(word[:])
		b.WriteByte(f.typ)
		gap()
		b.WriteByte(4)
		b.Write(f.data)
	}
}

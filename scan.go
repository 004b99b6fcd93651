package gofds

import (
	"hash/crc32"
)

const (
	// signatureMarker starts the disk header block: the block tag followed by '*'.
	signatureMarker = "\x01*"
	// makerCRC is the CRC-32 of the eight byte system maker name following the marker.
	makerCRC = 3571442638
	// systemTag follows the maker name.
	systemTag = "-HVC*"

	signatureSize = len(Signature)
)

// matchSignature reports whether a disk header signature starts at offset.
func matchSignature(data []byte, offset int) bool {
	if offset < 0 || len(data)-offset < signatureSize {
		return false
	}
	sig := data[offset : offset+signatureSize]
	return string(sig[0:2]) == signatureMarker &&
		crc32.ChecksumIEEE(sig[2:10]) == makerCRC &&
		string(sig[10:15]) == systemTag
}

// Scan searches the whole dump for disk header signatures.
// Every offset is tested, so matches may overlap. The result is ordered by offset.
// A dump without any signature results in an empty (nil) slice.
func Scan(data []byte) []Location {
	var found []Location
	for offset := 0; offset+signatureSize <= len(data); offset++ {
		if matchSignature(data, offset) {
			found = append(found, Location{Offset: offset, Index: len(found)})
		}
	}
	return found
}

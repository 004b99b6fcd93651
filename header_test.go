package gofds

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aligator/gofds/checkpoint"
)

func TestDecodeHeader(t *testing.T) {
	data := testDump(t, "sample.fds")

	got, pos, err := DecodeHeader(data, Location{Offset: sampleFirstImage})
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}

	var signature [15]byte
	copy(signature[:], Signature)
	want := Header{
		Signature:   signature,
		Maker:       0x01,
		TitleID:     [4]byte{'Z', 'E', 'L', ' '},
		Version:     0,
		Side:        0,
		DiskNumbers: [3]byte{},
		UseIPL:      0x0F,
		Completed:   Date{Year: 0x61, Month: 0x02, Day: 0x21},
		Created:     Date{Year: 0x61, Month: 0x02, Day: 0x21},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeHeader() = %+v, want %+v", got, want)
	}
	if pos != sampleFirstImage+HeaderSize {
		t.Errorf("DecodeHeader() pos = %v, want %v", pos, sampleFirstImage+HeaderSize)
	}
	if got.System() != "HVC" {
		t.Errorf("Header.System() = %v, want HVC", got.System())
	}
	if got.Title() != "ZEL" {
		t.Errorf("Header.Title() = %q, want %q", got.Title(), "ZEL")
	}
}

func TestDecodeHeader_fields(t *testing.T) {
	ti := testImage{maker: 0xA4, title: "SMB", side: 1, created: Date{Year: 0x62, Month: 0x11, Day: 0x05}}
	data := ti.header()
	data[20] = 3
	data[22], data[23], data[24] = 7, 8, 9

	got, _, err := DecodeHeader(data, Location{})
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if got.Maker != 0xA4 || got.Version != 3 || got.Side != 1 {
		t.Errorf("DecodeHeader() maker/version/side = %#x/%v/%v", got.Maker, got.Version, got.Side)
	}
	if got.DiskNumbers != [3]byte{7, 8, 9} {
		t.Errorf("DecodeHeader() disk numbers = %v", got.DiskNumbers)
	}
	if got.Created != (Date{Year: 0x62, Month: 0x11, Day: 0x05}) {
		t.Errorf("DecodeHeader() created = %+v", got.Created)
	}
}

func TestDecodeHeader_truncated(t *testing.T) {
	data := singleProgram.header()[:40]

	_, _, err := DecodeHeader(data, Location{Offset: 0})
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Fatalf("DecodeHeader() error = %v, wantErr %v", err, ErrTruncatedHeader)
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("DecodeHeader() error = %v, does not keep the cause %v", err, ErrOutOfRange)
	}
	// The reserved bytes behind the completed date are the first read running past the end.
	if offset, ok := checkpoint.Offset(err); !ok || offset != 34 {
		t.Errorf("checkpoint.Offset() = %v, %v, want 34, true", offset, ok)
	}
}

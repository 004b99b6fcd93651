package gofds

import (
	"bytes"
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	one := singleProgram.bytes()

	brokenMaker := append([]byte(nil), one...)
	brokenMaker[5] = 'X'

	brokenTag := append([]byte(nil), one...)
	brokenTag[12] = 'N'

	tests := []struct {
		name string
		data []byte
		want []Location
	}{
		{
			name: "empty dump",
			data: nil,
			want: nil,
		},
		{
			name: "only zero bytes",
			data: make([]byte, 4096),
			want: nil,
		},
		{
			name: "single image at the start",
			data: one,
			want: []Location{{Offset: 0, Index: 0}},
		},
		{
			name: "images behind junk",
			data: bytes.Join([][]byte{[]byte("junk"), one, make([]byte, 7), one}, nil),
			want: []Location{{Offset: 4, Index: 0}, {Offset: 4 + len(one) + 7, Index: 1}},
		},
		{
			name: "adjacent signatures",
			data: []byte(Signature + Signature),
			want: []Location{{Offset: 0, Index: 0}, {Offset: 15, Index: 1}},
		},
		{
			name: "signature cut at the end",
			data: []byte(Signature[:14]),
			want: nil,
		},
		{
			name: "maker name does not match the checksum",
			data: brokenMaker,
			want: nil,
		},
		{
			name: "system tag differs",
			data: brokenTag,
			want: nil,
		},
		{
			name: "marker without the rest",
			data: []byte("\x01*\x01*\x01*"),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scan(tt.data); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_sample(t *testing.T) {
	want := []Location{{Offset: sampleFirstImage, Index: 0}, {Offset: sampleSecondImage, Index: 1}}
	if got := Scan(testDump(t, "sample.fds")); !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

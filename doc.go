// Package gofds recovers the files stored in Famicom Disk System dumps.
//
// A dump is scanned for disk header signatures (Scan), every disk found is
// decoded into its header and file listing (Decode) and the files can be
// written to any afero.Fs (Extractor) or browsed through the read only
// afero.Fs view returned by New.
package gofds

//go:generate go run ./cmd/generate

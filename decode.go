package gofds

import (
	"io"
	"log/slog"
)

// Options changes how a dump is decoded.
type Options struct {
	// CRCVariant enables the dialect which stores two extra bytes in front of every block tag.
	// It cannot be detected from the data and has to be chosen by the caller.
	CRCVariant bool
	// YearBase is added to the year of header dates. Zero means DefaultYearBase.
	YearBase int
	// Logger receives diagnostics. Nil discards them, the problems are still
	// recorded in Image.Err and Listing.Problems.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{YearBase: DefaultYearBase}
}

// Year returns the year base to use.
func (o Options) Year() int {
	if o.YearBase == 0 {
		return DefaultYearBase
	}
	return o.YearBase
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// Decode finds and decodes every disk image in the dump.
// The images are returned in the order they were found. A failure in one image
// is stored in that image and does not affect the others.
func Decode(data []byte, opts Options) []Image {
	log := opts.logger()

	locations := Scan(data)
	images := make([]Image, 0, len(locations))
	for _, loc := range locations {
		images = append(images, DecodeImage(data, loc, opts))
	}

	log.Debug("scanFinished", "bytes", len(data), "images", len(images))
	return images
}

// DecodeImage decodes the header and the block stream of a single image.
func DecodeImage(data []byte, loc Location, opts Options) Image {
	log := opts.logger()
	img := Image{Location: loc}

	header, pos, err := DecodeHeader(data, loc)
	if err != nil {
		log.Warn("imageSkipped", "offset", loc.Offset, "index", loc.Index, "err", err)
		img.Err = err
		return img
	}
	img.Header = header
	log.Debug("imageFound", "offset", loc.Offset, "index", loc.Index, "title", header.Title(), "side", header.Side)

	img.Listing = DecodeBlocks(data, pos, opts)
	return img
}

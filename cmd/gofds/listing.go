package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aligator/gofds"
	"github.com/aligator/gofds/checkpoint"
	"github.com/cespare/xxhash/v2"
)

// lister prints the listing of all images of a dump.
type lister struct {
	w    io.Writer
	data []byte
	cfg  config
	year int
}

func (l *lister) print(name string, images []gofds.Image) error {
	fmt.Fprintf(l.w, "\n%s\n", name)
	if l.cfg.verbose && l.year != gofds.YearBaseShowa {
		fmt.Fprintf(l.w, "(years are shown as %d + year, use --year-base %d for calendar years)\n", l.year, gofds.YearBaseShowa)
	}

	for _, img := range images {
		if err := l.image(img); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(l.w)
	return err
}

// headerLine is the one line summary of a disk header.
func headerLine(img gofds.Image, year int) string {
	if img.Err != nil {
		return fmt.Sprintf("  ** Disk header truncated%s. **", at(img.Err))
	}

	h := img.Header
	line := fmt.Sprintf("  %02X %q\tv.%d S%d %02X  %s %s",
		h.Maker, string(h.TitleID[:]), h.Version, h.Side, h.UseIPL,
		h.Completed.Format(year), h.Created.Format(year))
	if img.Listing.HasDirectory {
		line += fmt.Sprintf("  %d files", img.Listing.Declared)
	}
	return line
}

func (l *lister) image(img gofds.Image) error {
	fmt.Fprintf(l.w, "\n%s\n", headerLine(img, l.year))
	if img.Err != nil {
		return nil
	}
	fmt.Fprintln(l.w)

	tw := tabwriter.NewWriter(l.w, 0, 8, 1, ' ', 0)
	if l.cfg.verbose {
		fmt.Fprintln(tw, " n,id,\tname\tload\tsize\tspan\ttype\txxh64")
	}

	catalogs := img.Catalogs()
	for i, entry := range img.Listing.Entries {
		row := entryRow(entry)
		if l.cfg.verbose {
			row += fmt.Sprintf("\t%016x", xxhash.Sum64(entry.Payload))
		}
		if _, ok := catalogs[i]; ok {
			row += " \\"
		}
		fmt.Fprintln(tw, row)

		if l.cfg.show {
			if err := tw.Flush(); err != nil {
				return err
			}
			if err := gofds.Dump(l.w, l.data, entry.Offset, len(entry.Payload), -1); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, problem := range img.Listing.Problems {
		fmt.Fprintf(l.w, "\n%s\n", describe(problem))
	}

	if l.cfg.catalog {
		for i := range img.Listing.Entries {
			if c, ok := catalogs[i]; ok {
				fmt.Fprintf(l.w, "\n%s", indent(c.String()))
			}
		}
	}
	return nil
}

// entryRow formats one file as tab separated columns.
func entryRow(e gofds.FileEntry) string {
	return fmt.Sprintf(" %d,%02X,\t%q\t$%04X\t%d\t$%04X\t%d %s",
		e.Number, e.Secondary, e.Name, e.LoadAddress, e.Size, e.LoadSpan()&0xFFFF, byte(e.Type), e.Type)
}

// describe turns a block stream problem into a listing line.
func describe(err error) string {
	switch {
	case errors.Is(err, gofds.ErrFileCountMismatch):
		return "** File count wrong. Check file system. **"
	case errors.Is(err, gofds.ErrMissingFileData):
		return fmt.Sprintf("** File data missing%s. **", at(err))
	case errors.Is(err, gofds.ErrTruncatedPayload):
		return fmt.Sprintf("** File data truncated%s. **", at(err))
	case errors.Is(err, gofds.ErrUnexpectedBlock):
		return fmt.Sprintf("** Unexpected block%s. **", at(err))
	}
	return fmt.Sprintf("** %v **", err)
}

func at(err error) string {
	if offset, ok := checkpoint.Offset(err); ok {
		return fmt.Sprintf(" @ byte %d", offset)
	}
	return ""
}

func indent(text string) string {
	return "    " + strings.ReplaceAll(strings.TrimSuffix(text, "\n"), "\n", "\n    ") + "\n"
}

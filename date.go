package gofds

import (
	"fmt"
	"strconv"
	"time"
)

// The year byte of a header date is added to a base year.
// Older tool revisions used the Showa era offset, newer ones print a two digit year.
const (
	YearBaseShowa   = 1925
	YearBaseShort   = 25
	DefaultYearBase = YearBaseShort
)

// Date is a header date as stored on disk: one byte each for year, month and day.
// The bytes are meant to be BCD, but real disks contain out of range values,
// so the raw bytes are kept and interpreted on demand.
type Date struct {
	Year  byte
	Month byte
	Day   byte
}

// digits reads the hexadecimal notation of b as a decimal number, stopping at the
// first non decimal digit:
//  0x61 -> 61, 0x5A -> 5, 0xA1 -> 0
// This is the historical interpretation and has to be kept for compatible output.
func digits(b byte) int {
	s := fmt.Sprintf("%x", b)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, _ := strconv.Atoi(s[:end])
	return v
}

// YearValue returns the year using the given base.
func (d Date) YearValue(base int) int {
	return base + digits(d.Year)
}

// Format renders the date as month/day/year, month and day as hex digits.
func (d Date) Format(base int) string {
	return fmt.Sprintf("%x/%x/%d", d.Month, d.Day, d.YearValue(base))
}

func isBCD(b byte) bool {
	return b>>4 <= 9 && b&0x0F <= 9
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// Time converts a well formed date into a time.Time at 00:00:00 UTC.
// As a calendar date needs a full year, YearBaseShowa is always used.
//
// If any byte is no valid BCD value, or month or day are out of range,
// time.Time{} is returned to be compatible with time.Time.IsZero().
func (d Date) Time() time.Time {
	if !isBCD(d.Year) || !isBCD(d.Month) || !isBCD(d.Day) {
		return time.Time{}
	}

	month, day := bcd(d.Month), bcd(d.Day)
	if month == 0 || month > 12 || day == 0 || day > 31 {
		return time.Time{}
	}

	return time.Date(YearBaseShowa+bcd(d.Year), time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

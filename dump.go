package gofds

import (
	"fmt"
	"io"
	"strings"
)

const dumpRowWidth = 16

// Dump writes a hex and ASCII view of data[offset:offset+length] to w.
// Rows are prefixed with the absolute byte position. If cite is a valid index into
// the dumped range, that byte is marked with a quote, a V above its column and a < after its row.
// Non printable characters are shown as a backtick.
func Dump(w io.Writer, data []byte, offset, length, cite int) error {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	if length < 0 || length > len(data)-offset {
		length = len(data) - offset
	}
	chunk := data[offset : offset+length]

	var b strings.Builder
	fmt.Fprintf(&b, "* check @ byte %d length %d cite %d\n{\n", offset, length, cite)

	b.WriteString("      ")
	for i := 0; i < dumpRowWidth && i < len(chunk); i++ {
		fmt.Fprintf(&b, " %X ", i)
		if i == 7 {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('\n')

	if cite >= 0 && cite < len(chunk) {
		col := cite % dumpRowWidth
		pad := 7 + 3*col
		if col >= 8 {
			pad++
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString("V\n")
	}

	for row := 0; row < len(chunk); row += dumpRowWidth {
		end := row + dumpRowWidth
		if end > len(chunk) {
			end = len(chunk)
		}

		fmt.Fprintf(&b, " %04X:", offset+row)
		var ascii strings.Builder
		for i := row; i < end; i++ {
			mark := byte(' ')
			if i == cite {
				mark = '\''
			}
			fmt.Fprintf(&b, "%c%02X", mark, chunk[i])
			if i-row == 7 {
				b.WriteByte(' ')
			}

			if chunk[i] >= 32 && chunk[i] <= 126 {
				ascii.WriteByte(chunk[i])
			} else {
				ascii.WriteByte('`')
			}
		}

		// Align the ASCII column of a short last row.
		missing := row + dumpRowWidth - end
		b.WriteString(strings.Repeat("   ", missing))
		if end-row < 8 {
			b.WriteByte(' ')
		}

		b.WriteString("  ")
		b.WriteString(ascii.String())
		if cite >= row && cite < end {
			b.WriteByte('<')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

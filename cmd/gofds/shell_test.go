package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aligator/gofds"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/require"
)

func testShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	data, err := gofds.LoadFile(sampleDump)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &shell{
		name: sampleDump,
		data: data,
		fs:   gofds.New(data),
		year: gofds.DefaultYearBase,
		out:  out,
	}, out
}

func Test_smartSplit(t *testing.T) {
	tests := []struct {
		line     string
		wantVerb string
		wantArgs []string
	}{
		{line: "", wantVerb: ""},
		{line: "   ", wantVerb: ""},
		{line: "ls", wantVerb: "ls"},
		{line: "ls  HVC-01-ZEL ", wantVerb: "ls", wantArgs: []string{"HVC-01-ZEL"}},
		{line: `extract "**/*" "my dir"`, wantVerb: "extract", wantArgs: []string{"**/*", "my dir"}},
		{line: `extract my\ dir`, wantVerb: "extract", wantArgs: []string{"my dir"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			verb, args := smartSplit(tt.line)
			require.Equal(t, tt.wantVerb, verb)
			if len(tt.wantArgs) == 0 {
				require.Empty(t, args)
				return
			}
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_shell_process(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr string
	}{
		{line: ""},
		{line: "ls", want: []string{"  HVC-01-ZEL/\n", "  HVC-A4-SMB/\n"}},
		{line: "LS /", want: []string{"  HVC-01-ZEL/\n"}},
		{line: "ls HVC-01-ZEL", want: []string{
			fmt.Sprintf("  %-24s %6d %s\n", "0-0-00-KYODAKU-", 224, "VRAM"),
			fmt.Sprintf("  %-24s %6d %s\n", "0-1-0F-MAIN", 16, "PRG"),
			fmt.Sprintf("  %-24s %6d %s\n", "0-2-10-CHR01", 32, "CHR"),
		}},
		{line: "ls HVC-FF-NONE", wantErr: "HVC-FF-NONE"},
		{line: "ls a b", wantErr: "ls expects at most 1 arguments"},
		{line: "info", want: []string{
			sampleDump + ": 525 bytes, 2 disks\n",
			"  01 \"ZEL \"\tv.0 S0 0F  2/21/86 2/21/86  3 files  @ byte 37\n",
			"  A4 \"SMB \"\tv.0 S1 0F  2/21/86 2/21/86  2 files  @ byte 434\n",
			"    ** File count wrong. Check file system. **\n",
		}},
		{line: "dump HVC-01-ZEL/0-1-0F-MAIN", want: []string{"* check @ byte 353 length 16 cite -1\n"}},
		{line: "dump HVC-01-ZEL", wantErr: "is no file"},
		{line: "dump", wantErr: "dump expects at least 1 arguments"},
		{line: "catalog HVC-01-ZEL/0-0-00-KYODAKU-", want: []string{"[DISK CATALOG  ZELDA NO DENSETSU\n"}},
		{line: "catalog HVC-01-ZEL/0-1-0F-MAIN", wantErr: "is no catalog block"},
		{line: "help", want: []string{"  quit       Leave this place\n", "  extract    Extract files to a local directory\n"}},
		{line: "help ls", want: []string{"ls [<dir>]\n\nLists the disks"}},
		{line: "help info", want: []string{"info\n\nInformation about the disks in the dump\n"}},
		{line: "help nothing", wantErr: "unrecognized command: nothing"},
		{line: "format", wantErr: "unrecognized command: format"},
		{line: "quit", wantErr: errQuit.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, out := testShell(t)

			err := s.process(tt.line)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				require.Contains(t, out.String(), want)
			}
		})
	}
}

func Test_shell_quit(t *testing.T) {
	s, _ := testShell(t)
	require.ErrorIs(t, s.process("quit"), errQuit)
}

func Test_shell_extract(t *testing.T) {
	s, out := testShell(t)
	dir := t.TempDir()

	require.NoError(t, s.process(fmt.Sprintf("extract **/*CHR* %q", dir)))
	require.Equal(t, fmt.Sprintf("1 files written to %s, 0 failed\n", dir), out.String())

	data, err := os.ReadFile(filepath.Join(dir, "HVC-01-ZEL", "0-2-10-CHR01"))
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0x55}, 32), data)

	out.Reset()
	require.NoError(t, s.process(fmt.Sprintf("extract %q", dir)))
	require.Equal(t, fmt.Sprintf("4 files written to %s, 0 failed\n", dir), out.String())

	require.ErrorIs(t, s.process(fmt.Sprintf("extract HVC-[ %q", dir)), doublestar.ErrBadPattern)
}

func Test_shell_paths(t *testing.T) {
	s, _ := testShell(t)

	require.ElementsMatch(t, []string{
		"HVC-01-ZEL",
		"HVC-01-ZEL/0-0-00-KYODAKU-",
		"HVC-01-ZEL/0-1-0F-MAIN",
		"HVC-01-ZEL/0-2-10-CHR01",
		"HVC-A4-SMB",
		"HVC-A4-SMB/1-0-01-DATA",
	}, s.paths(""))

	require.NotNil(t, s.completer())
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aligator/gofds"
	"github.com/chzyer/readline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

// shell is an interactive session over one loaded dump.
type shell struct {
	name string
	data []byte
	fs   *gofds.Fs
	year int
	out  io.Writer
}

type shellCommand struct {
	Name             string
	Description      string
	MinArgs, MaxArgs int
	Code             func(s *shell, args []string) error
	Text             []string
}

var shellCommands map[string]*shellCommand

func init() {
	shellCommands = map[string]*shellCommand{
		"ls": {
			Name:        "ls",
			Description: "List a directory",
			MinArgs:     0,
			MaxArgs:     1,
			Code:        (*shell).ls,
			Text: []string{
				"ls [<dir>]",
				"",
				"Lists the disks, or the files of a disk directory.",
			},
		},
		"info": {
			Name:        "info",
			Description: "Information about the disks in the dump",
			MinArgs:     0,
			MaxArgs:     0,
			Code:        (*shell).info,
		},
		"dump": {
			Name:        "dump",
			Description: "Show the data of a file",
			MinArgs:     1,
			MaxArgs:     1,
			Code:        (*shell).dump,
			Text: []string{
				"dump <file>",
				"",
				"Prints a hex view of the file data with its position in the dump.",
			},
		},
		"catalog": {
			Name:        "catalog",
			Description: "Show the text of a catalog block",
			MinArgs:     1,
			MaxArgs:     1,
			Code:        (*shell).catalog,
		},
		"extract": {
			Name:        "extract",
			Description: "Extract files to a local directory",
			MinArgs:     1,
			MaxArgs:     2,
			Code:        (*shell).extract,
			Text: []string{
				"extract [<pattern>] <local dir>",
				"",
				"Extracts all files matching the pattern (default: all files).",
				"Patterns match disk/file paths and may contain ** (e.g. 'HVC-01-*/**').",
			},
		},
		"help": {
			Name:        "help",
			Description: "Shows this help",
			MinArgs:     0,
			MaxArgs:     1,
			Code:        (*shell).help,
		},
		"quit": {
			Name:        "quit",
			Description: "Leave this place",
			MinArgs:     0,
			MaxArgs:     0,
			Code:        func(*shell, []string) error { return errQuit },
		},
	}
}

// smartSplit splits a command line at spaces. Double quotes and a backslash
// keep spaces inside of an argument.
func smartSplit(line string) (string, []string) {
	var out []string

	var inQuotes, lastEscape bool
	var chunk strings.Builder

	add := func() {
		if chunk.Len() > 0 {
			out = append(out, chunk.String())
			chunk.Reset()
		}
	}

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			add()
		case ch == ' ':
			if inQuotes || lastEscape {
				chunk.WriteRune(ch)
			} else {
				add()
			}
			lastEscape = false
		case ch == '\\' && !inQuotes:
			lastEscape = true
		default:
			chunk.WriteRune(ch)
			lastEscape = false
		}
	}
	add()

	if len(out) == 0 {
		return "", out
	}
	return out[0], out[1:]
}

// process runs a single command line. errQuit is returned by quit.
func (s *shell) process(line string) error {
	verb, args := smartSplit(strings.TrimSpace(line))
	if verb == "" {
		return nil
	}

	command, ok := shellCommands[strings.ToLower(verb)]
	if !ok {
		return fmt.Errorf("unrecognized command: %s", verb)
	}
	if len(args) < command.MinArgs {
		return fmt.Errorf("%s expects at least %d arguments", command.Name, command.MinArgs)
	}
	if len(args) > command.MaxArgs {
		return fmt.Errorf("%s expects at most %d arguments", command.Name, command.MaxArgs)
	}
	return command.Code(s, args)
}

func (s *shell) ls(args []string) error {
	dir := "/"
	if len(args) > 0 {
		dir = args[0]
	}

	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if info.IsDir() {
			fmt.Fprintf(s.out, "  %s/\n", info.Name())
			continue
		}
		kind := ""
		if entry, ok := info.Sys().(*gofds.FileEntry); ok {
			kind = entry.Type.String()
		}
		fmt.Fprintf(s.out, "  %-24s %6d %s\n", info.Name(), info.Size(), kind)
	}
	return nil
}

func (s *shell) info([]string) error {
	images := s.fs.Images()
	fmt.Fprintf(s.out, "%s: %d bytes, %d disks\n", s.name, len(s.data), len(images))
	for _, img := range images {
		fmt.Fprintf(s.out, "%s  @ byte %d\n", headerLine(img, s.year), img.Location.Offset)
		for _, problem := range img.Listing.Problems {
			fmt.Fprintf(s.out, "    %s\n", describe(problem))
		}
	}
	return nil
}

// entry returns the decoded file behind a path of the filesystem view.
func (s *shell) entry(name string) (*gofds.FileEntry, error) {
	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	entry, ok := info.Sys().(*gofds.FileEntry)
	if !ok {
		return nil, fmt.Errorf("%s is no file", name)
	}
	return entry, nil
}

func (s *shell) dump(args []string) error {
	entry, err := s.entry(args[0])
	if err != nil {
		return err
	}
	return gofds.Dump(s.out, s.data, entry.Offset, len(entry.Payload), -1)
}

func (s *shell) catalog(args []string) error {
	entry, err := s.entry(args[0])
	if err != nil {
		return err
	}
	c, ok := gofds.RecognizeCatalog(*entry)
	if !ok {
		return fmt.Errorf("%s is no catalog block", args[0])
	}
	_, err = io.WriteString(s.out, c.String())
	return err
}

func (s *shell) extract(args []string) error {
	pattern, dir := "", args[len(args)-1]
	if len(args) == 2 {
		pattern = args[0]
	}

	extractor := gofds.NewExtractor(afero.NewBasePathFs(afero.NewOsFs(), dir))
	written, failed := 0, 0
	for _, img := range s.fs.Images() {
		result, err := extractor.ExtractImage(img, pattern)
		if err != nil {
			return err
		}
		for _, err := range result.Failed {
			fmt.Fprintf(s.out, "failed: %v\n", err)
		}
		written += len(result.Written)
		failed += len(result.Failed)
	}
	fmt.Fprintf(s.out, "%d files written to %s, %d failed\n", written, dir, failed)
	return nil
}

func (s *shell) help(args []string) error {
	if len(args) == 1 {
		command, ok := shellCommands[args[0]]
		if !ok {
			return fmt.Errorf("unrecognized command: %s", args[0])
		}
		text := command.Text
		if len(text) == 0 {
			text = []string{command.Name, "", command.Description}
		}
		fmt.Fprintln(s.out, strings.Join(text, "\n"))
		return nil
	}

	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %-10s %s\n", name, shellCommands[name].Description)
	}
	return nil
}

// paths lists every path of the filesystem view, used for completion.
func (s *shell) paths(string) []string {
	var paths []string
	_ = afero.Walk(s.fs, "", func(path string, info os.FileInfo, err error) error {
		if err == nil && path != "" {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}

func (s *shell) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(shellCommands))
	for name := range shellCommands {
		switch name {
		case "ls", "dump", "catalog":
			items = append(items, readline.PcItem(name, readline.PcItemDynamic(s.paths)))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func (s *shell) loop() error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".gofds_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "fds:" + filepath.Base(s.name) + "> ",
		HistoryFile:  historyFile,
		AutoComplete: s.completer(),
		Stdout:       s.out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// io.EOF or readline.ErrInterrupt end the session.
			return nil
		}

		err = s.process(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
		}
	}
}

func newShellCmd() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "shell [flags] FILE",
		Short: "Browse a dump interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			log := newLogger(cmd.ErrOrStderr(), cfg.debug)
			data, err := gofds.LoadFile(args[0])
			if err != nil {
				log.Debug("loadFailed", "err", err)
				return fmt.Errorf("couldn't open %q: %w", args[0], gofds.ErrReadInput)
			}

			opts := cfg.options(log)
			s := &shell{
				name: args[0],
				data: data,
				fs:   gofds.NewWithOptions(data, opts),
				year: opts.Year(),
				out:  cmd.OutOrStdout(),
			}
			return s.loop()
		},
	}
	addDecodeFlags(cmd, &cfg)
	return cmd
}

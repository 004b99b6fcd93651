// gofds lists the disk images found in a Famicom Disk System dump and recovers their files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aligator/gofds"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// config holds the command line flags.
type config struct {
	show     bool
	write    bool
	out      string
	verbose  bool
	crc      bool
	yearBase int
	match    string
	catalog  bool
	debug    bool
}

func (c config) options(log *slog.Logger) gofds.Options {
	return gofds.Options{
		CRCVariant: c.crc,
		YearBase:   c.yearBase,
		Logger:     log,
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func addDecodeFlags(cmd *cobra.Command, cfg *config) {
	cmd.Flags().BoolVarP(&cfg.crc, "crc", "c", false, "the dump stores two extra bytes in front of every block")
	cmd.Flags().IntVar(&cfg.yearBase, "year-base", gofds.DefaultYearBase, "added to the year of header dates (1925 gives calendar years)")
	cmd.Flags().BoolVar(&cfg.debug, "debug", false, "log decoder details to stderr")
}

func newRootCmd() *cobra.Command {
	var cfg config

	root := &cobra.Command{
		Use:   "gofds [flags] FILE",
		Short: "Recover files from Famicom Disk System dumps",
		Long: "Scan a raw FDS dump for disk images, list their files and optionally extract them.\n" +
			"Dumps compressed with gzip or xz are read directly.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid, everything failing from here on is no usage problem.
			cmd.SilenceUsage = true
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg)
		},
	}

	root.Flags().BoolVarP(&cfg.show, "show", "s", false, "dump the data of every file")
	root.Flags().BoolVarP(&cfg.write, "write", "w", false, "extract all files")
	root.Flags().StringVarP(&cfg.out, "out", "o", ".", "directory the extracted files are written to")
	root.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "print column headers and file fingerprints")
	root.Flags().StringVar(&cfg.match, "match", "", "only extract files whose path matches this glob (e.g. 'HVC-01-*/**')")
	root.Flags().BoolVar(&cfg.catalog, "catalog", false, "print the text of catalog blocks")
	addDecodeFlags(root, &cfg)

	root.AddCommand(newShellCmd())
	return root
}

func run(stdout, stderr io.Writer, name string, cfg config) error {
	log := newLogger(stderr, cfg.debug)

	data, err := gofds.LoadFile(name)
	if err != nil {
		log.Debug("loadFailed", "err", err)
		return fmt.Errorf("couldn't open %q: %w", name, gofds.ErrReadInput)
	}

	images := gofds.Decode(data, cfg.options(log))

	l := &lister{
		w:    stdout,
		data: data,
		cfg:  cfg,
		year: cfg.options(log).Year(),
	}
	if err := l.print(name, images); err != nil {
		return err
	}

	if !cfg.write {
		return nil
	}

	extractor := gofds.NewExtractor(afero.NewBasePathFs(afero.NewOsFs(), cfg.out))
	for _, img := range images {
		result, err := extractor.ExtractImage(img, cfg.match)
		if err != nil {
			return err
		}
		for _, err := range result.Failed {
			log.Error("extractFailed", "err", err)
		}
		log.Info("filesWritten", "image", img.Location.Index, "dir", cfg.out, "files", len(result.Written), "failed", len(result.Failed))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package cli implements the chunkwise command.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tsawler/chunkwise"
	"github.com/tsawler/chunkwise/chunking"
	"github.com/tsawler/chunkwise/model"
)

// Version information (set by the release build)
var (
	version = "dev"
	commit  = "none"
)

// SetVersion records build information shown by --version.
func SetVersion(v, c string) {
	version, commit = v, c
}

type rootOptions struct {
	configPath string
	envFile    string
	output     string
}

// NewRootCmd creates the chunkwise root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chunkwise [elements.json]",
		Short: "Split document elements into size-bounded chunks",
		Long: `Split a JSON array of partitioned document elements into chunks.

Elements are read from the given file, or from stdin when no file or "-" is
given. Chunks are written as a JSON element array to stdout or --output.

Settings come from, in increasing priority: a YAML --config file,
CHUNKWISE_* environment variables (a .env file is loaded if present), and
command-line flags.

Examples:
  chunkwise elements.json
  chunkwise --strategy by_title --max-characters 1000 elements.json
  cat elements.json | chunkwise --overlap 50 --overlap-all -o chunks.json
  chunkwise --separator '\n' --separator '. ' elements.json`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunk(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before reading CHUNKWISE_* variables")
	flags.StringVarP(&opts.output, "output", "o", "", "Write chunks to file instead of stdout")

	flags.String("strategy", chunking.StrategyBasic.String(), "Chunking strategy: basic or by_title")
	flags.Int("max-characters", chunking.DefaultMaxCharacters, "Hard maximum chunk length in characters")
	flags.Int("new-after-n-chars", chunking.DefaultMaxCharacters, "Soft maximum: start a new chunk once this length is reached")
	flags.Int("combine-text-under-n-chars", 0, "Combine chunks shorter than this with the next one (by_title defaults to max-characters)")
	flags.Int("overlap", 0, "Characters repeated between the pieces of a split element")
	flags.Bool("overlap-all", false, "Apply overlap between all chunks")
	flags.Bool("include-orig-elements", true, "Record source elements in chunk metadata")
	flags.Bool("multipage-sections", true, "Allow by_title chunks to span pages")
	flags.StringArray("separator", nil, "Text-splitting separator, in order of preference; Go escapes such as \\n are allowed (repeatable)")
	flags.Bool("normalize-unicode", false, "Apply NFC normalization to element text before chunking")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.Bool("log-json", false, "Write logs as JSON")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func runChunk(cmd *cobra.Command, args []string, opts *rootOptions) error {
	if err := godotenv.Load(opts.envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("env-file") {
			return fmt.Errorf("loading env file: %w", err)
		}
	}

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}

	logger := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON)

	elements, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	logger.Debug("elements loaded", "count", len(elements))

	chunker, err := cfg.Apply(chunkwise.FromElements(elements))
	if err != nil {
		return err
	}
	chunks, err := chunker.Logger(logger).Chunks()
	if err != nil {
		return err
	}
	logger.Info("chunking complete", "elements", len(elements), "chunks", len(chunks))

	return writeOutput(cmd, opts.output, chunks)
}

func readInput(cmd *cobra.Command, args []string) ([]*model.Element, error) {
	if len(args) == 0 || args[0] == "-" {
		elements, err := model.ReadElements(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return elements, nil
	}
	return model.ReadElementsFile(args[0])
}

func writeOutput(cmd *cobra.Command, path string, chunks []*model.Element) error {
	if path == "" {
		return model.WriteElements(cmd.OutOrStdout(), chunks)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := model.WriteElements(f, chunks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

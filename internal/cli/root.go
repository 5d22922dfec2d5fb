// Package cli wires flags, positional args and environment into the run modes
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/UnendingLoop/minigrep/internal/appmode"
	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/parser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type rootOptions struct {
	cluster     model.Cluster
	clusterFile string
	color       string
	debug       bool
	serve       string
	cacheSize   int
}

// NewRootCommand creates the minigrep command. stdin is used when FILE_PATH is "-".
// Flags go before QUERY: the first argument that is not a known flag starts the positional args,
// so queries like "help" or "-v" are searched for as is.
func NewRootCommand(stdin io.Reader, lookupEnv parser.LookupEnvFunc) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "minigrep [flags] [--] QUERY FILE_PATH",
		Short: "Print lines of a file containing a query string",
		Long: `minigrep prints every line of FILE_PATH that contains QUERY, in file order.

Matching is case-sensitive unless the IGNORE_CASE environment variable is set
(any value, even empty). With --node the search is sent to minigrep nodes and
the result agreed on by --quorum nodes is printed. With --serve ADDR minigrep
runs as a search node.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		// позиционные аргументы никогда не трактуются как подкоманды или флаги cobra
		DisableFlagParsing: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagArgs, positional := splitArgs(cmd.Flags(), args)
			if err := cmd.Flags().Parse(flagArgs); err != nil {
				return errors.Errorf("problem parsing arguments: %w", err)
			}

			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}
			if version, _ := cmd.Flags().GetBool("version"); version {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", cmd.Name(), cmd.Version)
				return err
			}

			setupLogger(cmd, opts.debug)

			if cmd.Flags().Changed("serve") {
				return runNode(cmd, opts.serve, opts.cacheSize)
			}
			return runSearch(cmd, positional, stdin, lookupEnv, opts)
		},
	}
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.Flags().Var(&opts.cluster.Nodes, "node", "search node address, e.g. http://localhost:8081 (repeatable)")
	cmd.Flags().IntVar(&opts.cluster.Quorum, "quorum", 0, "number of nodes that must agree on the result (default: majority)")
	cmd.Flags().StringVar(&opts.clusterFile, "cluster", "", "YAML file with 'nodes' and 'quorum'")
	cmd.Flags().StringVar(&opts.color, "color", string(model.ColorNever), "highlight matches: never, always or auto")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.serve, "serve", "", "run as a search node listening on ADDR, e.g. :8081")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", 1024, "number of task results a node keeps in memory")
	cmd.Flags().BoolP("help", "h", false, "help for minigrep")
	cmd.Flags().Bool("version", false, "version for minigrep")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, stdin io.Reader, lookupEnv parser.LookupEnvFunc, opts *rootOptions) error {
	// ошибки конфигурации возвращаются до любого обращения к файлу
	cfg, err := parser.Build(args, lookupEnv)
	if err != nil {
		return errors.Errorf("problem parsing arguments: %w", err)
	}

	cfg.Color, err = parser.ParseColorMode(opts.color)
	if err != nil {
		return errors.Errorf("problem parsing arguments: %w", err)
	}

	cfg.Cluster = opts.cluster
	if opts.clusterFile != "" {
		fileCluster, err := parser.LoadCluster(opts.clusterFile)
		if err != nil {
			return errors.Errorf("problem parsing arguments: %w", err)
		}
		parser.MergeCluster(&cfg.Cluster, fileCluster)
	}
	if err := parser.ValidateCluster(&cfg.Cluster); err != nil {
		return errors.Errorf("problem parsing arguments: %w", err)
	}

	ctx := cmd.Context()
	if cfg.Distributed() {
		err = appmode.RunMaster(ctx, cfg, stdin, cmd.OutOrStdout())
	} else {
		err = appmode.RunLocal(ctx, cfg, stdin, cmd.OutOrStdout())
	}
	if err != nil {
		return errors.Errorf("application error: %w", err)
	}
	return nil
}

// setupLogger attaches a console zerolog logger writing to stderr to the command context.
func setupLogger(cmd *cobra.Command, debug bool) {
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}

	out := cmd.ErrOrStderr()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stderr}).
		Level(logLevel).With().Timestamp().Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
}

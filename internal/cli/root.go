package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/config"
	"github.com/jisj/bookxmp/internal/document"
	"github.com/jisj/bookxmp/internal/files/filesystem"
	"github.com/jisj/bookxmp/internal/host"
	"github.com/jisj/bookxmp/internal/logging"
	"github.com/jisj/bookxmp/internal/tui"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookxmp",
		Short: "Typed book metadata in XMP packets",
		Long: `bookxmp reads and writes book metadata (titles, identifiers, genres,
authors, works and music-sheet attributes) stored as an XMP packet inside a
sidecar document, and publishes it to a PostgreSQL catalog.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Metadata are encrypted
  12 - Document could not be loaded or saved
  13 - Metadata packet or stored value is malformed
  14 - Catalog unavailable`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	root.PersistentFlags().String("config", "", "Path to bookxmp.yaml (default: ./bookxmp.yaml if present)")

	root.AddCommand(
		newInitCmd(),
		newShowCmd(),
		newSetCmd(),
		newWorkCmd(),
		newInfoCmd(),
		newDumpCmd(),
		newCatalogCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command. Ctrl-C cancels the command context.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// session bundles what a command needs: resolved config, logger, output
// styles and the filesystem sidecars live on.
type session struct {
	cfg    *config.Config
	logger *logging.ConsoleLogger
	styles tui.Styles
	out    io.Writer
	fs     filesystem.Provider
}

func newSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(".", configPath)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	if tui.IsStyled(cmd.ErrOrStderr()) {
		logger.WithDecorator(tui.NewStyles(true).LogDecorator())
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		styles: tui.NewStyles(tui.IsStyled(out)),
		out:    out,
		fs:     filesystem.NewOSFileSystem(),
	}, nil
}

func (s *session) loader() *host.SidecarLoader {
	return host.NewSidecarLoader(s.fs)
}

func (s *session) open(path string) (*document.Document, error) {
	return document.Open(s.loader(), path, s.logger)
}

// done prints a success line.
func (s *session) done(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "%s %s\n", s.styles.Success.Render(tui.SymbolCheck), fmt.Sprintf(format, args...))
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ytcatalog/internal/config"
	"ytcatalog/internal/youtube"
)

const (
	ExitOK       = 0
	ExitCLIError = 1
	ExitQuota    = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ytcatalog [channel]",
		Short: "Export every video of a YouTube channel to a tracking CSV",
		Long: "ytcatalog lists every video a YouTube channel has uploaded, tags each one with the " +
			"channel's custom playlists, and writes the result to data/csv_outputs/<Channel>_videos.csv " +
			"with a \"Not started\" status column for manual tracking. Each export is recorded in " +
			"data/tracked_channels.txt.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: rootPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, exportMode{})
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("data-dir", "d", "data", "Directory holding csv_outputs/ and tracked_channels.txt")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log every API page and debug details")
	root.PersistentFlags().Float64("max-qps", 0, "Pace API requests to at most this many per second (0 = unlimited)")
	root.PersistentFlags().String("api-key", "", "YouTube Data API key (prefer YOUTUBE_API_KEY or .env)")

	// Also bind export flags on root, so `ytcatalog <channel>` works.
	bindExportFlags(root.Flags())

	// Subcommands
	root.AddCommand(newExportCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newTrackedCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindExportFlags(fs *pflag.FlagSet) {
	fs.Bool("no-playlists", false, "Skip the custom playlist merge and the Playlists column")
	fs.Bool("no-ui", false, "Disable TUI; use plain log output")
}

func rootPreRun(cmd *cobra.Command, _ []string) error {
	if err := config.Init(cmd.Root()); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	setupLogging(os.Stderr, config.Load().Verbose)
	return nil
}

func setupLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// exitError maps a failed run to its exit code. Quota and access denials get
// their own code so scripts can retry later; everything else is 1.
func exitError(err error) *ExitError {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee
	}
	if errors.Is(err, youtube.ErrQuotaOrAccess) {
		return &ExitError{Code: ExitQuota, Err: fmt.Errorf("%w; if quota was exceeded, try again tomorrow", err)}
	}
	return &ExitError{Code: ExitCLIError, Err: err}
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ytcatalog/internal/catalog"
	"ytcatalog/internal/config"
	"ytcatalog/internal/model"
	"ytcatalog/internal/progress"
	"ytcatalog/internal/ui"
	"ytcatalog/internal/util"
	"ytcatalog/internal/youtube"
)

type exportMode struct {
	ForceTUI bool
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "export [channel]",
		Short:         "Fetch a channel's videos and write the tracking CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, exportMode{})
		},
	}
	bindExportFlags(cmd.Flags())
	return cmd
}

func runExport(cmd *cobra.Command, args []string, mode exportMode) error {
	ctx := cmd.Context()
	cfg := config.Load()
	key, err := cfg.Credential()
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	noPlaylists, _ := cmd.Flags().GetBool("no-playlists")
	useTUI := mode.ForceTUI || (!noUI && isTerminal())

	input, err := channelInput(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), args, useTUI && stdinIsTerminal())
	if err != nil {
		return exitError(err)
	}

	client, err := youtube.New(ctx, key, youtube.WithMaxQPS(cfg.MaxQPS))
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	opts := model.Options{
		DataDir:          cfg.DataDir,
		IncludePlaylists: !noPlaylists,
		MaxQPS:           cfg.MaxQPS,
		Verbose:          cfg.Verbose,
		NoUI:             !useTUI,
	}
	exportFn := func(ctx context.Context, input string, rp progress.Reporter) (catalog.Exported, error) {
		svc := catalog.NewService(
			catalog.WithAPI(client),
			catalog.WithOptions(opts),
			catalog.WithReporter(rp),
		)
		return svc.Export(ctx, input)
	}

	var out catalog.Exported
	if useTUI {
		// Log lines would tear the TUI; the view shows warnings itself.
		log.SetOutput(io.Discard)
		out, err = ui.Run(ctx, input, exportFn)
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.WithField("input", input).Info("processing channel")
		out, err = exportFn(ctx, input, progress.NewLogReporter(log.StandardLogger()))
	}

	if errors.Is(err, catalog.ErrNoVideos) {
		if !useTUI {
			fmt.Fprintln(cmd.OutOrStdout(), "No videos found on this channel")
		}
		return nil
	}
	if err != nil {
		return exitError(err)
	}
	if !useTUI {
		printSummary(cmd.OutOrStdout(), out)
	}
	return nil
}

// channelInput returns the channel argument, or asks for one: through the
// TUI prompt when interactive, otherwise one line from in.
func channelInput(ctx context.Context, in io.Reader, prompt io.Writer, args []string, interactive bool) (string, error) {
	var raw string
	switch {
	case len(args) > 0:
		raw = args[0]
	case interactive:
		v, err := ui.Prompt(ctx)
		if err != nil {
			return "", &ExitError{Code: ExitCLIError, Err: err}
		}
		raw = v
	default:
		fmt.Fprint(prompt, "Enter YouTube channel URL: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", &ExitError{Code: ExitCLIError, Err: fmt.Errorf("read channel URL: %w", err)}
		}
		raw = line
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ExitError{Code: ExitCLIError, Err: util.ErrEmptyInput}
	}
	return raw, nil
}

func printSummary(w io.Writer, out catalog.Exported) {
	fmt.Fprintf(w, "Channel:   %s (%s)\n", out.Channel.Title, out.Channel.ID)
	fmt.Fprintf(w, "Videos:    %s\n", humanize.Comma(int64(len(out.Videos))))
	if out.Merged {
		fmt.Fprintf(w, "Playlists: %d merged, %d skipped\n", len(out.CustomPlaylists)-len(out.Skipped), len(out.Skipped))
	}
	fmt.Fprintf(w, "Saved:     %s (%s)\n", out.OutputPath, humanize.Bytes(uint64(out.Bytes)))
	if out.LedgerErr == nil {
		fmt.Fprintf(w, "Tracked:   %s\n", out.LedgerPath)
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

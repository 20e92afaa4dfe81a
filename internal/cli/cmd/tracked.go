package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytcatalog/internal/config"
	"ytcatalog/internal/ledger"
	"ytcatalog/internal/model"
	"ytcatalog/internal/ui"
)

func newTrackedCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tracked",
		Short:         "List channels recorded in the tracking ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := ledger.New(config.Load().DataDir)
			entries, err := l.Entries()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No channels tracked yet in %s\n", l.Path())
				return nil
			}
			renderTracked(cmd.OutOrStdout(), entries, time.Now())
			return nil
		},
	}
}

// renderTracked prints entries as aligned columns with relative ages.
func renderTracked(w io.Writer, entries []model.TrackingEntry, now time.Time) {
	sty := ui.DefaultStyles()
	header := []string{"EXPORTED", "AGE", "CHANNEL", "ID", "FILE"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date.Format(model.DateLayout),
			humanize.RelTime(e.Date, now, "ago", "from now"),
			e.ChannelName,
			e.ChannelID,
			e.OutputFile,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			// last column is not padded
			if i == len(cells)-1 {
				parts[i] = style.Render(c)
				continue
			}
			parts[i] = style.Render(c + strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
		return strings.Join(parts, "  ")
	}

	fmt.Fprintln(w, line(header, sty.Header))
	for _, r := range rows {
		fmt.Fprintln(w, line(r, sty.StageInfo))
	}
	fmt.Fprintln(w, sty.Faint.Render(fmt.Sprintf("%d channel(s)", len(entries))))
}

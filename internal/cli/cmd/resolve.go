package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"ytcatalog/internal/catalog"
	"ytcatalog/internal/config"
	"ytcatalog/internal/model"
	"ytcatalog/internal/youtube"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resolve <channel>",
		Short:         "Show the channel ID, uploads and custom playlists without exporting",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			key, err := cfg.Credential()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			client, err := youtube.New(ctx, key, youtube.WithMaxQPS(cfg.MaxQPS))
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			svc := catalog.NewService(catalog.WithAPI(client))

			ref, ch, err := svc.Resolve(ctx, args[0])
			if err != nil {
				return exitError(err)
			}
			var customs []model.PlaylistRef
			noPlaylists, _ := cmd.Flags().GetBool("no-playlists")
			if !noPlaylists {
				customs, err = svc.CustomPlaylistsOf(ctx, ch)
				if err != nil {
					return exitError(fmt.Errorf("list playlists: %w", err))
				}
			}
			printResolved(cmd.OutOrStdout(), ref, ch, customs, !noPlaylists)
			return nil
		},
	}
	cmd.Flags().Bool("no-playlists", false, "Skip listing custom playlists")
	return cmd
}

// printResolved outputs what an export would read, without reading it.
func printResolved(w io.Writer, ref model.ChannelRef, ch model.Channel, customs []model.PlaylistRef, withPlaylists bool) {
	fmt.Fprintln(w, "Resolved channel:")
	fmt.Fprintf(w, "- Input:          %s %s\n", ref.Kind, ref.Value)
	fmt.Fprintf(w, "- Channel ID:     %s\n", ch.ID)
	fmt.Fprintf(w, "- Title:          %s\n", ch.Title)

	roles := make([]string, 0, len(ch.Related))
	for role := range ch.Related {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Fprintf(w, "- %-15s %s\n", role+":", ch.Related[role])
	}

	if !withPlaylists {
		return
	}
	fmt.Fprintf(w, "- Custom playlists: %d\n", len(customs))
	for _, p := range customs {
		fmt.Fprintf(w, "    %s  %s\n", p.ID, p.Title)
	}
}

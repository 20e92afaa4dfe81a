package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ytcatalog/internal/config"
	"ytcatalog/internal/dirs"
	"ytcatalog/internal/export"
	"ytcatalog/internal/ledger"
	"ytcatalog/internal/util"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Check the API key and data directory without calling the API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg := config.Load()
			var problems []error

			if cfgDir, err := dirs.ConfigDir(); err == nil {
				fmt.Fprintf(out, "Config dir: %s\n", cfgDir)
			}
			if _, err := cfg.Credential(); err != nil {
				fmt.Fprintf(out, "API key:    missing\n")
				problems = append(problems, err)
			} else {
				fmt.Fprintf(out, "API key:    set (%s)\n", maskKey(cfg.APIKey))
			}

			csvDir := filepath.Join(cfg.DataDir, export.OutputSubdir)
			if err := util.CheckWritable(csvDir); err != nil {
				fmt.Fprintf(out, "Data dir:   %s (not writable)\n", cfg.DataDir)
				problems = append(problems, fmt.Errorf("data dir %s: %w", cfg.DataDir, err))
			} else {
				fmt.Fprintf(out, "Data dir:   %s\n", cfg.DataDir)
			}

			l := ledger.New(cfg.DataDir)
			if entries, err := l.Entries(); err != nil {
				problems = append(problems, err)
			} else {
				fmt.Fprintf(out, "Ledger:     %s (%d channels)\n", l.Path(), len(entries))
			}

			if len(problems) > 0 {
				return &ExitError{Code: ExitCLIError, Err: errors.Join(problems...)}
			}
			return nil
		},
	}
}

// maskKey keeps only the last four characters of a credential.
func maskKey(k string) string {
	if len(k) <= 4 {
		return "****"
	}
	return "****" + k[len(k)-4:]
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stefanpenner/tabfocus/pkg/report"
	"github.com/stefanpenner/tabfocus/pkg/store"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all stored data",
		Long: `Export every stored value to a file.

Examples:
  tabfocus export                      # tabfocus-export-<date>.json
  tabfocus export --format yaml
  tabfocus export -o - | jq .streakData`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != store.FormatJSON && format != store.FormatYAML {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			ctx := cmd.Context()
			b := a.store.Export(ctx, a.clock.Now(), a.cfg.DefaultMinutes)

			if output == "-" {
				return store.WriteBundle(cmd.OutOrStdout(), b, format)
			}
			if output == "" {
				output = store.ExportFilename(a.store.Dates().Today(), format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := store.WriteBundle(f, b, format); err != nil {
				f.Close()
				return fmt.Errorf("writing export: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			a.log.Info("exported data", "file", output, "format", format)
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"file": output})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", store.FormatJSON, "output format: json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default tabfocus-export-<date>.<format>)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore data from an export (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading export: %w", err)
			}

			b, err := store.ReadBundle(data)
			if err != nil {
				return err
			}
			if err := a.store.Import(cmd.Context(), b); err != nil {
				return err
			}

			a.log.Info("imported data", "file", args[0], "exportedAt", b.ExportedAt)
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), b)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d todo(s), %d link(s), streak %d\n",
				len(b.Todos), len(b.QuickLinks), b.StreakData.Current)
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print today's dashboard as formatted markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			md := report.Markdown(ctx, a.store, a.store.TimerMinutes(ctx, a.cfg.DefaultMinutes))
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"markdown": md})
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			out, err := report.Render(md, width, a.store.DarkMode(ctx))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without styling")
	return cmd
}

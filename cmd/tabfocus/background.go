package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/tabfocus/pkg/store"
)

func newBackgroundCmd(a *app) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		bg := a.store.Background(cmd.Context())
		out := cmd.OutOrStdout()
		if a.jsonOut {
			return outputJSON(out, bg)
		}
		if bg.Type == store.BackgroundCustom {
			fmt.Fprintf(out, "Background: custom image (%d bytes)\n", len(bg.Image))
			return nil
		}
		fmt.Fprintf(out, "Background: %s\n", bg.Preset)
		return nil
	}

	cmd := &cobra.Command{
		Use:     "background",
		Aliases: []string{"bg"},
		Short:   "Show the background",
		Args:    cobra.NoArgs,
		RunE:    show,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the background",
		Args:  cobra.NoArgs,
		RunE:  show,
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "preset <name>",
		Short:     "Use a built-in background: " + strings.Join(store.Presets, ", "),
		ValidArgs: store.Presets,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.SetPresetBackground(cmd.Context(), args[0]); err != nil {
				return err
			}
			return show(cmd, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "image <file>",
		Short: "Use an image file as the background",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			if err := a.store.SetCustomBackground(cmd.Context(), data); err != nil {
				return err
			}
			return show(cmd, nil)
		},
	})

	return cmd
}

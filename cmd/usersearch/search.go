package main

import (
	"errors"
	"fmt"
	"io"

	"usersearch/internal/search"
	"usersearch/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errSearchFailed makes the search command exit non-zero on the error phase.
var errSearchFailed = errors.New("search failed")

func newSearchCmd(v *viper.Viper, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search <username>",
		Short: "Run one search without the UI and print what the UI would show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errors.New("username must not be empty")
			}
			a, err := setup(cmd.Context(), v, *configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			defer a.close()

			ctrl := a.controller
			ctrl.SetQuery(args[0])
			run := ctrl.TriggerSearch(cmd.Context())

			out := cmd.OutOrStdout()
			printLines(out, ui.PlainStatus(ctrl.Snapshot()))
			if msg, ok := run().(search.ResultMsg); ok {
				ctrl.Resolve(msg)
			}
			printLines(out, ui.PlainStatus(ctrl.Snapshot()))

			if ctrl.Phase() == search.PhaseError {
				return errSearchFailed
			}
			return nil
		},
	}
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

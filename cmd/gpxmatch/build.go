package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [track...]",
		Short: "Compare all track pairs and overwrite the match index",
		Long: `build compares every unordered pair of tracks, either the ones given as
arguments or every track file in the tracks directory, and replaces the
match index file. The smaller identifier of each pair is the stored key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if len(ids) == 0 {
				var err error
				ids, err = a.engine.GetSource().ListTracks()
				if err != nil {
					return err
				}
			}

			report, err := a.engine.GetBuilder().BuildAndSave(cmd.Context(), ids, a.engine.GetRepository())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "compared %d pairs of %d tracks, stored %d pairs with %d matches in %s\n",
				report.PairsCompared, report.Tracks, report.PairsStored, report.Matches,
				a.engine.GetRepository().Path())
			for _, s := range report.Skipped {
				fmt.Fprintf(out, "skipped %s: %v\n", s.TrackID, s.Err)
			}
			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "number of comparison workers")
	cmd.Flags().String("on-unresolved", "", "abort or skip when a track cannot be read")
	_ = viper.BindPFlag("build_workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("on_unresolved", cmd.Flags().Lookup("on-unresolved"))
	return cmd
}

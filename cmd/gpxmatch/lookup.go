package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <track_a> <track_b>",
		Short: "Print the matching index pairs of two tracks",
		Long: `lookup prints [index_in_track_a, index_in_track_b] pairs. The first
component always refers to the first argument, whichever direction the
pair is stored under.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.engine.GetQueryService().Lookup(args[0], args[1])
			if err != nil {
				return err
			}
			if !res.IndexBuilt {
				fmt.Fprintln(cmd.ErrOrStderr(), "the match index does not exist, run `gpxmatch build` first")
			}
			data, err := json.Marshal(res.Pairs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

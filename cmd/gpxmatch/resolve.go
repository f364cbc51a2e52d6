package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <track_a> <track_b>",
		Short: "Print the shared coordinates of two tracks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, coords, err := a.engine.GetQueryService().Matches(args[0], args[1])
			if err != nil {
				return err
			}
			if !res.IndexBuilt {
				fmt.Fprintln(cmd.ErrOrStderr(), "the match index does not exist, run `gpxmatch build` first")
			}
			data, err := json.Marshal(coords)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

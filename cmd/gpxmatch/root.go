package main

import (
	"github.com/lintang-b-s/gpxmatch/pkg/engine"
	"github.com/lintang-b-s/gpxmatch/pkg/logger"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg    *util.Config
	log    *zap.Logger
	engine *engine.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gpxmatch",
		Short: "Find where GPX tracks share the same coordinates",
		Long: `gpxmatch compares every pair of tracks in a directory, stores the
positions where they coincide in a JSON match index, and answers
lookups against that index.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("tracks-dir", "", "directory holding the track files (.gpx, .gpx.bz2, .json)")
	flags.String("index-path", "", "match index JSON file")
	flags.Float64("tolerance", 0, "coordinate equality tolerance in meters, 0 for exact equality")
	flags.String("log-level", "", "debug, info, warn or error")
	_ = viper.BindPFlag("tracks_dir", flags.Lookup("tracks-dir"))
	_ = viper.BindPFlag("index_path", flags.Lookup("index-path"))
	_ = viper.BindPFlag("tolerance_meters", flags.Lookup("tolerance"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newBuildCmd(a),
		newLookupCmd(a),
		newResolveCmd(a),
		newTracksCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	if err := util.ReadConfig(); err != nil {
		return err
	}
	cfg, err := util.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New()
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(cfg, log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.engine = eng
	return nil
}

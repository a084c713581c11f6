package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/limaJavier/timetabling/internal/config"
	"github.com/limaJavier/timetabling/internal/logger"
)

// Exit codes follow the SAT-solver convention: 10 when timetables were found, 20 when none exist
const (
	exitFound    = 10
	exitNotFound = 20
	exitError    = 1
)

func main() {
	exitCode := 0
	rootCmd := newRootCmd(&exitCode)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	os.Exit(exitCode)
}

type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(exitCode *int) *cobra.Command {
	app := &app{v: viper.New()}
	var configPath string

	root := &cobra.Command{
		Use:           "timetable",
		Short:         "Course timetable planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(app.v, configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			app.cfg, app.logger = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", "console", "Log format: console or json")
	_ = app.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = app.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newGenerateCmd(app, exitCode),
		newValidateCmd(app, exitCode),
	)
	return root
}

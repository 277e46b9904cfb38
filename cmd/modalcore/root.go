package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/logger"
	"github.com/dshills/modalcore/internal/vfs"
)

// failedError reports that a command already printed why it failed.
type failedError struct{ n int }

func (e failedError) Error() string { return fmt.Sprintf("%d failed", e.n) }

// app is the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	fs  vfs.FS
	cfg config.Config
	log *logger.Logger
}

// newRootCmd builds the command tree. The returned func releases the
// logger once the command has run.
func newRootCmd() (*cobra.Command, func()) {
	a := &app{fs: vfs.NewOSFS()}

	root := &cobra.Command{
		Use:           "modalcore",
		Short:         "Drive the modal editing engine from the command line",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (TOML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write the log to this file")

	root.AddCommand(newKeysCmd(a), newReplayCmd(a), newConfigCmd(a))
	return root, a.close
}

func (a *app) init() error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.fs, a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	logCfg := a.cfg.Log
	if a.logLevel != "" {
		logCfg.Level = a.logLevel
	}
	if a.logFile != "" {
		logCfg.File = a.logFile
	}
	if logCfg.File == "" && a.logLevel == "" {
		logCfg.Level = "error"
	}

	l, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.log = l
	a.log.Debug("starting", zap.String("version", version), zap.String("config", a.configPath))
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
		a.log = nil
	}
}

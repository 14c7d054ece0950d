package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "headturn",
		Short: "Yaw amplification layer for OpenXR applications",
		Long: `headturn amplifies the yaw of the head orientation an OpenXR application submits,
so that a small turn of the head gives a larger turn in the scene.

The amplification factor is read from XR_HEADTURN_AMPLIFY (default 3).`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logs")

	root.AddCommand(
		newSimulateCmd(a),
		newChainCmd(a),
		newManifestCmd(),
	)

	return root
}

func (a *app) initLogger() error {
	config := zap.NewProductionConfig()
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return errors.Wrap(err, "unable to initialize logger")
	}

	a.logger = logger

	return nil
}

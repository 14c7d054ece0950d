package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/headturn/internal/config"
	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline"
)

type simulateOptions struct {
	amplify  float32
	strategy string
	sessions int
	out      string
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate [scenario.yaml]",
		Short: "Replay a scenario through the layer and print the delivered head orientations",
		Long: `Negotiates the layer with a simulated loader, creates an instance on top of a
simulated runtime and submits every frame of the scenario on each session. For every view the
submitted and delivered yaw, pitch and roll are printed in degrees.

The factor is taken from --amplify, then from the scenario, then from XR_HEADTURN_AMPLIFY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulate(cmd, opts, args[0])
		},
	}

	addSimulationFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "also write the frame flow as DOT to this file")

	return cmd
}

func newChainCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "chain [scenario.yaml]",
		Short: "Replay a scenario and write the measured frame flow as DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, sim, err := a.prepare(cmd, opts, args[0])
			if err != nil {
				return err
			}

			sim.dot = cmd.OutOrStdout()

			_, err = sim.run(cmd.Context(), sc.Submissions())

			return err
		},
	}

	addSimulationFlags(cmd, opts)

	return cmd
}

func addSimulationFlags(cmd *cobra.Command, opts *simulateOptions) {
	cmd.Flags().Float32VarP(&opts.amplify, "amplify", "a", config.DefaultAmplify, "amplification factor")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "amplification strategy: decoupled or euler")
	cmd.Flags().IntVar(&opts.sessions, "sessions", 1, "number of sessions submitting the frames concurrently")
}

func (a *app) runSimulate(cmd *cobra.Command, opts *simulateOptions, path string) error {
	sc, sim, err := a.prepare(cmd, opts, path)
	if err != nil {
		return err
	}

	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return errors.Wrap(err, "unable to create output file")
		}
		defer f.Close()

		sim.dot = f
	}

	frames := sc.Submissions()

	res, err := sim.run(cmd.Context(), frames)
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), sc, sim, frames, res)
}

func (a *app) prepare(cmd *cobra.Command, opts *simulateOptions, path string) (*Scenario, *simulation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to open scenario")
	}
	defer f.Close()

	sc, err := LoadScenario(f)
	if err != nil {
		return nil, nil, err
	}

	source, err := factorSource(cmd.Flags().Changed("amplify"), opts.amplify, sc)
	if err != nil {
		return nil, nil, err
	}

	name := opts.strategy
	if name == "" {
		name = sc.Strategy
	}

	strategy, err := orientation.ParseStrategy(name)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to select strategy")
	}

	return sc, &simulation{
		logger:   a.logger,
		source:   source,
		strategy: strategy,
		sessions: opts.sessions,
	}, nil
}

func factorSource(flagSet bool, flagValue float32, sc *Scenario) (pipeline.FactorSource, error) {
	switch {
	case flagSet:
		if !(flagValue > 0) {
			return nil, errors.Wrapf(ErrInvalidAmplify, "got %v", flagValue)
		}

		return pipeline.ConstantFactor(flagValue), nil
	case sc.Amplify > 0:
		return pipeline.ConstantFactor(sc.Amplify), nil
	default:
		return config.NewEnv(), nil
	}
}

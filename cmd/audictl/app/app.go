package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openiov/audictl/cmd/audictl/app/options"
	"github.com/openiov/audictl/internal/audictl"
	"github.com/openiov/audictl/pkg/audi"
	"github.com/openiov/audictl/pkg/log"
)

const (
	commandName = "audictl"
	commandDesc = `audictl signs in to a vehicle cloud account and issues control and query
commands against a named vehicle: lock/unlock, climate control, charging,
pre-heater, window heating, data refresh and telemetry queries.

Credentials come from flags or from a config file (./config.{yaml,json} or
~/.audictl/), with flags taking precedence.`
)

// NewCommand builds the audictl root command with all subcommands attached.
func NewCommand() *cobra.Command {
	opts := options.NewCLIOptions()

	cmd := &cobra.Command{
		Use:           commandName,
		Short:         "Control and monitor connected vehicles from the command line",
		Long:          commandDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			log.Init(opts.Log)
			return nil
		},
	}

	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newListVehiclesCommand(opts),
		newStatusCommand(opts),
		newLockCommand(opts, audi.ActionLock, "Lock the vehicle (requires S-PIN)"),
		newLockCommand(opts, audi.ActionUnlock, "Unlock the vehicle (requires S-PIN)"),
		newClimateStartCommand(opts),
		newSimpleActionCommand(opts, audi.ActionClimateStop, "Stop climate control"),
		newChargeStartCommand(opts),
		newSetChargeTargetCommand(opts),
		newSetChargingModeCommand(opts),
		newPreheaterStartCommand(opts),
		newSimpleActionCommand(opts, audi.ActionPreheaterStop, "Stop the pre-heater (requires S-PIN)"),
		newSimpleActionCommand(opts, audi.ActionWindowHeatingStart, "Start window heating"),
		newSimpleActionCommand(opts, audi.ActionWindowHeatingStop, "Stop window heating"),
		newSimpleActionCommand(opts, audi.ActionRefreshData, "Request fresh data from the vehicle"),
		newTripDataCommand(opts),
	)

	return cmd
}

// runWithCLI wires the shared invocation flow: signal-aware context,
// credential resolution, client construction and the single login sequence.
func runWithCLI(opts *options.CLIOptions, cmd *cobra.Command, run func(ctx context.Context, cli *audictl.CLI) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config(cmd.Flags().Changed("api-level"))

	cli, err := cfg.NewCLI()
	if err != nil {
		return err
	}

	if err := cli.Login(ctx); err != nil {
		return err
	}

	return run(ctx, cli)
}

func newListVehiclesCommand(opts *options.CLIOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "list-vehicles",
		Short: "List all vehicles of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.ListVehicles(ctx, raw)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw JSON data.")
	return cmd
}

func newStatusCommand(opts *options.CLIOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "status VIN",
		Short: "Get the vehicle status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.Status(ctx, args[0], raw)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw JSON data.")
	return cmd
}

func newLockCommand(opts *options.CLIOptions, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s VIN", action),
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, action, args[0], nil)
			})
		},
	}
}

// newSimpleActionCommand covers actions that take a VIN and no parameters.
func newSimpleActionCommand(opts *options.CLIOptions, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s VIN", action),
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, action, args[0], nil)
			})
		},
	}
}

func newClimateStartCommand(opts *options.CLIOptions) *cobra.Command {
	var (
		tempC                 int
		tempF                 int
		glassHeating          bool
		seatFL, seatFR        bool
		seatRL, seatRR        bool
		climatisationAtUnlock bool
	)

	cmd := &cobra.Command{
		Use:   "climate-start VIN",
		Short: "Start climate control",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]any{
				"temperatureC":          tempC,
				"glassHeating":          glassHeating,
				"seatFrontLeft":         seatFL,
				"seatFrontRight":        seatFR,
				"seatRearLeft":          seatRL,
				"seatRearRight":         seatRR,
				"climatisationAtUnlock": climatisationAtUnlock,
			}
			if cmd.Flags().Changed("temp-f") {
				params["temperatureF"] = tempF
			}

			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, audi.ActionClimateStart, args[0], params)
			})
		},
	}

	cmd.Flags().IntVar(&tempC, "temp", 21, "Target temperature in Celsius.")
	cmd.Flags().IntVar(&tempF, "temp-f", 0, "Target temperature in Fahrenheit (overrides --temp).")
	cmd.Flags().BoolVar(&glassHeating, "glass-heating", false, "Enable glass heating.")
	cmd.Flags().BoolVar(&seatFL, "seat-fl", false, "Front left seat heating.")
	cmd.Flags().BoolVar(&seatFR, "seat-fr", false, "Front right seat heating.")
	cmd.Flags().BoolVar(&seatRL, "seat-rl", false, "Rear left seat heating.")
	cmd.Flags().BoolVar(&seatRR, "seat-rr", false, "Rear right seat heating.")
	cmd.Flags().BoolVar(&climatisationAtUnlock, "climatisation-at-unlock", false, "Start climate control when the vehicle is unlocked.")
	return cmd
}

func newChargeStartCommand(opts *options.CLIOptions) *cobra.Command {
	var timer bool

	cmd := &cobra.Command{
		Use:   "charge-start VIN",
		Short: "Start battery charging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, audi.ActionChargeStart, args[0], map[string]any{"timer": timer})
			})
		},
	}
	cmd.Flags().BoolVar(&timer, "timer", false, "Start timer charging instead of manual charging.")
	return cmd
}

func newSetChargeTargetCommand(opts *options.CLIOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-charge-target VIN TARGET",
		Short: "Set the target state of charge (20-100%)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("target must be a number, got %q", args[1])
			}

			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, audi.ActionSetChargeTarget, args[0], map[string]any{"target": target})
			})
		},
	}
}

func newSetChargingModeCommand(opts *options.CLIOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-charging-mode VIN MODE",
		Short: "Set the charging mode (manual or timer) without starting charging",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, audi.ActionSetChargingMode, args[0], map[string]any{"mode": args[1]})
			})
		},
	}
}

func newPreheaterStartCommand(opts *options.CLIOptions) *cobra.Command {
	var duration int

	cmd := &cobra.Command{
		Use:   "preheater-start VIN",
		Short: "Start the pre-heater (requires S-PIN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.RunAction(ctx, audi.ActionPreheaterStart, args[0], map[string]any{"duration": duration})
			})
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 30, "Pre-heater duration in minutes.")
	return cmd
}

func newTripDataCommand(opts *options.CLIOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "trip-data VIN",
		Short: "Get trip statistics for the vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI(opts, cmd, func(ctx context.Context, cli *audictl.CLI) error {
				return cli.TripData(ctx, args[0], raw)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw JSON data.")
	return cmd
}

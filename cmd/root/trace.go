package root

import (
	"github.com/spf13/cobra"

	"github.com/napneko/beacon/pkg/telemetry"
)

func newTraceCmd() *cobra.Command {
	var flags identityFlags

	cmd := &cobra.Command{
		Use:   "trace EVENT [DATA]",
		Short: "Identify this host and send a single trace event",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.runTrace(cmd, args)
		},
	}
	flags.addFlags(cmd)

	return cmd
}

func (f *identityFlags) runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := f.resolve(persistedDeviceGUID)
	if err != nil {
		return RuntimeError{Err: err}
	}

	var data string
	if len(args) > 1 {
		data = args[1]
	}

	client := newReporter(cfg)
	// Close drains the identify and trace requests before the process exits.
	defer client.Close()

	ctx := telemetry.WithClient(cmd.Context(), client)
	client.Init(ctx, cfg.ClientVersion, cfg.DeviceGUID, cfg.WorkMode)
	telemetry.SendTrace(ctx, args[0], data)

	return nil
}

package root

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/napneko/beacon/pkg/telemetry"
	"github.com/napneko/beacon/pkg/version"
)

func newRunCmd() *cobra.Command {
	var flags identityFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Identify this host and send heartbeats until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.runBeacon(cmd)
		},
	}
	flags.addFlags(cmd)

	return cmd
}

// newReporter builds the telemetry client for a command; tests replace it.
var newReporter = func(cfg Config) *telemetry.Client {
	var opts []telemetry.Opt
	if cfg.ProductName != "" {
		opts = append(opts, telemetry.WithProductName(cfg.ProductName))
	}
	return telemetry.NewClient(slog.Default(), version.Version, opts...)
}

func (f *identityFlags) runBeacon(cmd *cobra.Command) error {
	cfg, err := f.resolve(persistedDeviceGUID)
	if err != nil {
		return RuntimeError{Err: err}
	}

	client := newReporter(cfg)
	defer client.Close()
	ctx := telemetry.WithClient(cmd.Context(), client)

	client.Init(ctx, cfg.ClientVersion, cfg.DeviceGUID, cfg.WorkMode)
	slog.Debug("Beacon started", "device_guid", cfg.DeviceGUID, "enabled", telemetry.GetTelemetryEnabled())
	fmt.Fprintln(cmd.OutOrStdout(), "beacon running, press Ctrl+C to stop")

	<-ctx.Done()
	return nil
}

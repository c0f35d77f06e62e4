package root

import (
	"github.com/spf13/cobra"
)

func newIdentifyCmd() *cobra.Command {
	var flags identityFlags

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Send a single identify event for this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.runIdentify(cmd)
		},
	}
	flags.addFlags(cmd)

	return cmd
}

func (f *identityFlags) runIdentify(cmd *cobra.Command) error {
	cfg, err := f.resolve(persistedDeviceGUID)
	if err != nil {
		return RuntimeError{Err: err}
	}

	client := newReporter(cfg)
	defer client.Close()

	client.Identify(cmd.Context(), cfg.ClientVersion, cfg.DeviceGUID, cfg.WorkMode)

	return nil
}

package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	debugMode bool
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "beacon",
		Short: "beacon - analytics heartbeat reporter",
		Long:  "beacon reports identify, trace and heartbeat events to the napneko Umami collector",
		Example: `  beacon run --client-version 9.9.15 --work-mode shell
  beacon trace launch
  beacon identify --device-guid my-host
  TELEMETRY_ENABLED=false beacon run`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags.setupLogging(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newTraceCmd())
	cmd.AddCommand(newIdentifyCmd())

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var runtimeErr RuntimeError
	if errors.As(err, &runtimeErr) {
		fmt.Fprintln(stderr, "Error:", runtimeErr.Err)
		return err
	}

	// Command line usage errors - show the error and usage
	fmt.Fprintln(stderr, err)
	fmt.Fprintln(stderr)
	if strings.HasPrefix(err.Error(), "unknown command ") || strings.HasPrefix(err.Error(), "accepts ") {
		_ = rootCmd.Usage()
	}
	return err
}

// setupLogging configures slog logging behavior. Telemetry only reports at
// info level once, when the collector cache token is first received; --debug
// also shows every request and dropped failure.
func (f *rootFlags) setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if f.debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// RuntimeError wraps runtime errors to distinguish them from usage errors
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}

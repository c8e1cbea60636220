package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay [files...]",
		Short: "Post sample payment payloads to a PayHook webhook",
		Long: `Reads JSON files containing one payload object or an array of payload
objects and posts each payload to the webhook endpoint, printing the
response status for every delivery.`,
		Version: Version,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newReplayer(opts, cmd.OutOrStdout())
			return r.Run(args)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", "http://localhost:3001/webhook", "Webhook URL")
	cmd.Flags().DurationVarP(&opts.Delay, "delay", "d", 0, "Pause between deliveries")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Per-request timeout")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "Stop at the first non-200 response")

	return cmd
}

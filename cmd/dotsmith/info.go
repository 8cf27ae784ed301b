package main

import (
	"github.com/spf13/cobra"

	"github.com/dotsmith-cli/dotsmith/pkg/device"
	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: MsgInfoShort,
		Long:  MsgInfoLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := device.Detect()

			r := ui.NewRenderer(cmd.OutOrStdout())
			r.DeviceInfo(info)
			if ok, reason := info.Supported(); !ok {
				r.Warnf("unsupported device: %s", reason)
			}
			return nil
		},
	}
}

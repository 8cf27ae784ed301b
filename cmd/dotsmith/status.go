package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dotsmith-cli/dotsmith/pkg/conflicts"
	"github.com/dotsmith-cli/dotsmith/pkg/device"
	"github.com/dotsmith-cli/dotsmith/pkg/filesystem"
	"github.com/dotsmith-cli/dotsmith/pkg/profiles"
	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

func newStatusCmd() *cobra.Command {
	var (
		baseName string
		overlays []string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnv()
			if err != nil {
				return err
			}

			base := baseName
			if base == "" {
				base = device.Detect().ProfileName()
			}

			log.Info().
				Str("dotfiles_root", env.paths.DotfilesRoot()).
				Str("base", base).
				Msg("Checking status from dotfiles root")

			store := profiles.NewStore(env.profilesDir())
			desc, err := store.Merge(base, overlayNames(overlays, env.settings)...)
			if err != nil {
				return fmt.Errorf(MsgErrMergeProfiles, err)
			}

			found := conflicts.NewDetector(filesystem.NewOS()).Detect(desc, env.configsDir())

			r := ui.NewRenderer(cmd.OutOrStdout())
			r.Conflicts(found)
			if len(found) > 0 {
				return fmt.Errorf(MsgErrConflicts, len(found))
			}

			r.Successf("all %d configured targets are clean", desc.ConfigPaths.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&baseName, "base", "", MsgFlagBase)
	cmd.Flags().StringSliceVarP(&overlays, "profile", "p", nil, MsgFlagProfile)

	return cmd
}

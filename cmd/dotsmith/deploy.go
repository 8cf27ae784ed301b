package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dotsmith-cli/dotsmith/pkg/backup"
	"github.com/dotsmith-cli/dotsmith/pkg/conflicts"
	"github.com/dotsmith-cli/dotsmith/pkg/deploy"
	"github.com/dotsmith-cli/dotsmith/pkg/device"
	"github.com/dotsmith-cli/dotsmith/pkg/filesystem"
	"github.com/dotsmith-cli/dotsmith/pkg/profiles"
	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

func newDeployCmd() *cobra.Command {
	var (
		baseName string
		overlays []string
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:     "deploy",
		Short:   MsgDeployShort,
		Long:    MsgDeployLong,
		Example: MsgDeployExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Root().PersistentFlags().GetBool("force")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			env, err := initEnv()
			if err != nil {
				return err
			}
			force = force || env.settings.Deploy.Force

			r := ui.NewRenderer(cmd.OutOrStdout())
			r.Welcome()

			info := device.Detect()
			r.DeviceInfo(info)
			if ok, reason := info.Supported(); !ok {
				r.Warnf("unsupported device: %s", reason)
			}

			base := baseName
			if base == "" {
				base = info.ProfileName()
			}

			log.Info().
				Str("dotfiles_root", env.paths.DotfilesRoot()).
				Str("base", base).
				Bool("force", force).
				Bool("dry_run", dryRun).
				Msg("Deploying from dotfiles root")

			store := profiles.NewStore(env.profilesDir())
			desc, err := store.Merge(base, overlayNames(overlays, env.settings)...)
			if err != nil {
				return fmt.Errorf(MsgErrMergeProfiles, err)
			}

			fs := filesystem.NewOS()
			found := conflicts.NewDetector(fs).Detect(desc, env.configsDir())
			r.Conflicts(found)

			if len(found) > 0 && !force {
				return fmt.Errorf(MsgErrConflicts, len(found))
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
				return nil
			}

			if len(found) > 0 && env.settings.Deploy.Backup && !noBackup {
				session, err := backup.NewSession(fs, env.backupsDir())
				if err != nil {
					return fmt.Errorf(MsgErrBackup, err)
				}

				order := make([]string, 0, len(found))
				targets := make([]backup.Target, 0, len(found))
				for _, c := range found {
					order = append(order, c.Name)
					targets = append(targets, backup.Target{Name: c.Name, Path: c.Path})
				}

				results := session.BackupMany(targets)
				if err := session.SaveManifest(); err != nil {
					return fmt.Errorf(MsgErrBackup, err)
				}
				r.BackupResults(session, order, results)
			}

			results := deploy.NewDeployer(fs).DeployAll(desc, env.configsDir(), force)
			r.DeployResults(results)

			if failed := results.Failed(); failed > 0 {
				return fmt.Errorf(MsgErrDeployFailed, failed, len(results))
			}
			if results.Succeeded() > 0 {
				r.NextSteps()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseName, "base", "", MsgFlagBase)
	cmd.Flags().StringSliceVarP(&overlays, "profile", "p", nil, MsgFlagProfile)
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, MsgFlagNoBackup)

	return cmd
}

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dotsmith-cli/dotsmith/pkg/device"
	"github.com/dotsmith-cli/dotsmith/pkg/profiles"
	"github.com/dotsmith-cli/dotsmith/pkg/tools"
	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

func newInstallCmd() *cobra.Command {
	var (
		baseName string
		overlays []string
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			env, err := initEnv()
			if err != nil {
				return err
			}

			info := device.Detect()
			r := ui.NewRenderer(cmd.OutOrStdout())
			if ok, reason := info.Supported(); !ok {
				return fmt.Errorf("unsupported device: %s", reason)
			}

			base := baseName
			if base == "" {
				base = info.ProfileName()
			}

			store := profiles.NewStore(env.profilesDir())
			desc, err := store.Merge(base, overlayNames(overlays, env.settings)...)
			if err != nil {
				return fmt.Errorf(MsgErrMergeProfiles, err)
			}

			packageManager := desc.PackageManager
			if packageManager == "" {
				packageManager = info.PackageManager
			}

			packages := desc.Packages.All()
			log.Info().
				Str("package_manager", packageManager).
				Int("packages", len(packages)).
				Int("zsh_plugins", len(desc.ZshPlugins)).
				Bool("dry_run", dryRun).
				Msg("Installing tools from effective profile")

			if dryRun {
				for _, pkg := range packages {
					fmt.Fprintf(cmd.OutOrStdout(), "would install %s via %s\n", pkg, packageManager)
				}
				for _, plugin := range desc.ZshPlugins {
					fmt.Fprintf(cmd.OutOrStdout(), "would clone zsh plugin %s\n", plugin)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
				return nil
			}

			installer := tools.NewInstaller(packageManager, info.OS)

			failed := 0
			failed += reportResults(r, packages, installer.InstallPackages(packages),
				"installed %s", "failed to install %s")

			if installer.InstallOhMyZsh() {
				r.Successf("oh-my-zsh ready")
			} else {
				r.Errorf("oh-my-zsh installation failed")
				failed++
			}

			failed += reportResults(r, desc.ZshPlugins, installer.InstallZshPlugins(desc.ZshPlugins),
				"zsh plugin %s ready", "zsh plugin %s failed")

			if installer.InstallOhMyPosh() {
				r.Successf("oh-my-posh ready")
			} else {
				r.Errorf("oh-my-posh installation failed")
				failed++
			}

			if failed > 0 {
				return fmt.Errorf("%d tool installations failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseName, "base", "", MsgFlagBase)
	cmd.Flags().StringSliceVarP(&overlays, "profile", "p", nil, MsgFlagProfile)

	return cmd
}

// reportResults prints one line per item in declaration order, not map
// order, and returns the failure count.
func reportResults(r *ui.Renderer, order []string, results map[string]bool, okFormat, failFormat string) int {
	failed := 0
	for _, name := range order {
		if results[name] {
			r.Successf(okFormat, name)
		} else {
			r.Errorf(failFormat, name)
			failed++
		}
	}
	return failed
}

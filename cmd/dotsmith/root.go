package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dotsmith-cli/dotsmith/internal/version"
	"github.com/dotsmith-cli/dotsmith/pkg/config"
	"github.com/dotsmith-cli/dotsmith/pkg/logging"
	"github.com/dotsmith-cli/dotsmith/pkg/paths"
	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		force     bool
	)

	rootCmd := &cobra.Command{
		Use:     "dotsmith",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if !ui.IsTerminal() {
				pterm.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, MsgFlagForce)

	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// runEnv bundles the resolved paths and effective settings every
// command operates against.
type runEnv struct {
	paths    paths.Paths
	settings *config.Settings
}

// initEnv resolves the dotfiles root and loads the layered settings.
// A root named by the settings file itself wins over the environment
// fallback, so the settings are reloaded when it points elsewhere.
func initEnv() (*runEnv, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	settings, err := config.Load(p.SettingsPath())
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadSettings, err)
	}

	if root := settings.Dotfiles.Root; root != "" && paths.ExpandHome(root) != p.DotfilesRoot() {
		p, err = paths.New(root)
		if err != nil {
			return nil, fmt.Errorf(MsgErrInitPaths, err)
		}
		settings, err = config.Load(p.SettingsPath())
		if err != nil {
			return nil, fmt.Errorf(MsgErrLoadSettings, err)
		}
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning, p.DotfilesRoot())
	}

	return &runEnv{paths: p, settings: settings}, nil
}

func (e *runEnv) configsDir() string {
	return filepath.Join(e.paths.DotfilesRoot(), e.settings.Configs.Dir)
}

func (e *runEnv) profilesDir() string {
	return filepath.Join(e.paths.DotfilesRoot(), e.settings.Profiles.Dir)
}

func (e *runEnv) backupsDir() string {
	return filepath.Join(e.paths.DotfilesRoot(), e.settings.Backups.Dir)
}

// profileFileName maps a profile's logical name to its store filename.
// Names given with an extension pass through unchanged.
func profileFileName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".yml"
}

// overlayNames resolves the overlay list: explicit --profile flags win,
// otherwise the settings default applies.
func overlayNames(flagged []string, settings *config.Settings) []string {
	names := flagged
	if len(names) == 0 && settings.Profiles.Overlay != "" {
		names = []string{settings.Profiles.Overlay}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, profileFileName(name))
	}
	return out
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dotsmith version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

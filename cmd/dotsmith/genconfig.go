package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotsmith-cli/dotsmith/pkg/config"
	"github.com/dotsmith-cli/dotsmith/pkg/paths"
	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultTOML())
				return nil
			}

			p, err := paths.New("")
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}

			path := p.SettingsPath()
			if _, err := os.Lstat(path); err == nil {
				return fmt.Errorf("settings file already exists: %s", path)
			}
			if err := os.WriteFile(path, []byte(config.DefaultTOML()), 0644); err != nil {
				return fmt.Errorf("failed to write settings file: %w", err)
			}

			ui.NewRenderer(cmd.OutOrStdout()).Successf("wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}

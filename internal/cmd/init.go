package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/archaeo-tools/archaeo/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .archaeo.yaml",
		Long: `Write a .archaeo.yaml holding the default configuration in the current directory.

Examples:
  archaeo init          # Create .archaeo.yaml
  archaeo init --force  # Overwrite an existing .archaeo.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			existing := filepath.Join(cwd, config.ConfigFileName)
			if _, err := os.Stat(existing); err == nil {
				if !force {
					fmt.Fprintf(cmd.OutOrStdout(), "Already initialized at %s\n", config.ConfigFileName)
					return nil
				}
				if err := os.Remove(existing); err != nil {
					return fmt.Errorf("removing existing config: %w", err)
				}
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("checking config path: %w", err)
			}

			path, err := config.SaveDefault(cwd)
			if err != nil {
				return err
			}
			a.log.WithField("path", path).Debug("default configuration written")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", config.ConfigFileName)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .archaeo.yaml")
	return initCmd
}

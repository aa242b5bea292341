package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"applyhome/internal/config"
)

// ErrConfigExists is returned by init when the settings file is already present.
var ErrConfigExists = errors.New("config file already exists")

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [--force]",
	Short: "Writes a settings template with a placeholder service key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, configPath)
		}

		if err := config.WriteTemplate(configPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ 설정 템플릿을 생성했습니다: %s\n", configPath)

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing settings file")
	rootCmd.AddCommand(initCmd)
}

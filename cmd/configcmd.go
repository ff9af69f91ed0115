package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdconfig "github.com/mfiguera/notepad/cmd/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or scaffold configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := cmdconfig.Effective().Render()
			if err != nil {
				return err
			}
			fmt.Print(rendered)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmdconfig.DefaultPath()
			if err != nil {
				return err
			}
			if err := cmdconfig.WriteDefault(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/cmd"
	cmdconfig "github.com/mfiguera/notepad/cmd/config"
	"github.com/mfiguera/notepad/pkg/hostsvc"
	"github.com/mfiguera/notepad/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:           "notepad",
		Short:         "A multi-tab plain text editor for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmdconfig.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		cmdconfig.InitConfig()
		logger := cmdconfig.NewLogger()

		host := &hostsvc.OS{
			OpenPrompt: cmd.OpenPrompt(os.Stdin, os.Stderr),
			SavePrompt: cmd.SavePrompt(os.Stdin, os.Stderr),
			Logger:     logger,
		}
		confirm := func(prompt string) bool {
			if cmdconfig.Yes {
				return true
			}
			return cmd.ConfirmPrompt(os.Stdin, os.Stderr, prompt)
		}

		var err error
		svc, err = cmdconfig.InitService(host, confirm, logger)
		return err
	}

	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	}

	rootCmd.AddCommand(cmd.NewNewCmd(&svc))
	rootCmd.AddCommand(cmd.NewOpenCmd(&svc))
	rootCmd.AddCommand(cmd.NewTabsCmd(&svc))
	rootCmd.AddCommand(cmd.NewSwitchCmd(&svc))
	rootCmd.AddCommand(cmd.NewShowCmd(&svc))
	rootCmd.AddCommand(cmd.NewWriteCmd(&svc))
	rootCmd.AddCommand(cmd.NewEditCmd(&svc))
	rootCmd.AddCommand(cmd.NewSaveCmd(&svc))
	rootCmd.AddCommand(cmd.NewCloseCmd(&svc))
	rootCmd.AddCommand(cmd.NewFindCmd(&svc))
	rootCmd.AddCommand(cmd.NewReplaceCmd(&svc))
	rootCmd.AddCommand(cmd.NewStatsCmd(&svc))
	rootCmd.AddCommand(cmd.NewHistoryCmd(&svc))
	rootCmd.AddCommand(cmd.NewRecentCmd(&svc))
	rootCmd.AddCommand(cmd.NewPinCmd(&svc))
	rootCmd.AddCommand(cmd.NewRevealCmd(&svc))
	rootCmd.AddCommand(cmd.NewWatchCmd(&svc))
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

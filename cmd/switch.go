package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewSwitchCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch <id>",
		Short: "Make a tab active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			id, err := parseDocID(args[0])
			if err != nil {
				return err
			}

			if err := s.Switch(id); err != nil {
				return err
			}
			fmt.Printf("Active tab: %d\n", s.Collection.ActiveID())
			return nil
		},
	}

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewRevealCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal [id]",
		Short: "Show a tab's file in the system file manager",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}
			if err := s.Reveal(doc.ID); err != nil {
				return err
			}
			fmt.Printf("Revealed %s\n", doc.FilePath)
			return nil
		},
	}

	return cmd
}

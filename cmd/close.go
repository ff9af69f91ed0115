package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewCloseCmd(svc **service.Service) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "close [id]",
		Short: "Close a tab",
		Long: `Close a tab (the active one when no id is given). Closing a tab with
unsaved changes asks for confirmation unless --force is given. Closing the
last tab leaves a fresh blank tab in its place.

Examples:
  notepad close
  notepad close 3 --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}

			closed, err := s.CloseTab(doc.ID, force)
			if err != nil {
				return err
			}
			if !closed {
				fmt.Println("Cancelled")
				return nil
			}

			fmt.Printf("Closed %s\n", doc.DisplayName)
			fmt.Printf("Active tab: %d\n", s.Collection.ActiveID())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Discard unsaved changes without asking")

	return cmd
}

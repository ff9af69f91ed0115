package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/hostsvc"
	"github.com/mfiguera/notepad/pkg/service"
)

func NewSaveCmd(svc **service.Service) *cobra.Command {
	var asPath string

	cmd := &cobra.Command{
		Use:   "save [id]",
		Short: "Save a tab to its file",
		Long: `Save a tab (the active one when no id is given) to its file.
Tabs without a file path prompt for one; --as saves to an explicit path.

Examples:
  notepad save
  notepad save 2
  notepad save --as notes-copy.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}

			if asPath != "" {
				err = s.SaveTo(doc.ID, asPath)
			} else {
				err = s.Save(doc.ID)
			}
			if errors.Is(err, hostsvc.ErrCancelled) {
				fmt.Println("Cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Saved %s to %s\n", doc.DisplayName, doc.FilePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&asPath, "as", "", "Save to this path instead of the tab's file")

	return cmd
}

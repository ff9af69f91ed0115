package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/hostsvc"
	"github.com/mfiguera/notepad/pkg/service"
)

func NewOpenCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [path...]",
		Short: "Open files in new tabs",
		Long: `Open one or more files, each in its own tab. With no arguments the
open dialog asks for paths interactively.

Examples:
  notepad open notes.txt
  notepad open a.txt b.txt c.txt
  notepad open          # interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if len(args) == 0 {
				docs, err := s.OpenWithDialog()
				if errors.Is(err, hostsvc.ErrCancelled) {
					fmt.Println("Cancelled")
					return nil
				}
				if err != nil {
					return err
				}
				for _, doc := range docs {
					fmt.Printf("Opened tab %d (%s)\n", doc.ID, doc.DisplayName)
				}
				return nil
			}

			for _, path := range args {
				doc, err := s.OpenPath(path)
				if err != nil {
					return err
				}
				fmt.Printf("Opened tab %d (%s)\n", doc.ID, doc.DisplayName)
			}
			return nil
		},
	}

	return cmd
}

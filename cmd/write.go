package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewWriteCmd(svc **service.Service) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "write [id]",
		Short: "Replace a tab's content",
		Long: `Replace the content of a tab (the active one when no id is given).
Content comes from --content or stdin.

Examples:
  notepad write --content "hello"
  cat notes.txt | notepad write 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("content") {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}

			if err := s.SetContent(doc.ID, content); err != nil {
				return err
			}
			if doc.Modified {
				fmt.Printf("Tab %d modified\n", doc.ID)
			} else {
				fmt.Printf("Tab %d unchanged\n", doc.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "New content (default: stdin)")

	return cmd
}

func NewShowCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show [id]",
		Short:   "Print a tab's content",
		Aliases: []string{"cat"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resolveDoc(*svc, args)
			if err != nil {
				return err
			}
			fmt.Print(doc.Content)
			return nil
		},
	}

	return cmd
}

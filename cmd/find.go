package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewFindCmd(svc **service.Service) *cobra.Command {
	var docArg string
	var from int

	cmd := &cobra.Command{
		Use:   "find <term>",
		Short: "Find text in a tab",
		Long: `Find the first occurrence of a term in a tab's text, starting at a
character offset. The search wraps around to the top when nothing is found
past the offset.

Examples:
  notepad find hello
  notepad find hello --from 120
  notepad find hello --tab 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			pos, found := s.Find(doc.ID, args[0], from)
			if !found {
				fmt.Printf("%q not found in %s\n", args[0], doc.DisplayName)
				return nil
			}
			fmt.Printf("Found at offset %d in %s\n", pos, doc.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")
	cmd.Flags().IntVar(&from, "from", 0, "Character offset to start from")

	return cmd
}

func NewReplaceCmd(svc **service.Service) *cobra.Command {
	var docArg string

	cmd := &cobra.Command{
		Use:   "replace <old> <new>",
		Short: "Replace all occurrences of text in a tab",
		Long: `Replace every occurrence of a term in a tab's content and report how
many were replaced. Zero matches leave the tab untouched.

Examples:
  notepad replace teh the
  notepad replace foo bar --tab 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			n, err := s.ReplaceAll(doc.ID, args[0], args[1])
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Printf("%q not found in %s\n", args[0], doc.DisplayName)
				return nil
			}
			fmt.Printf("Replaced %d occurrence(s) in %s\n", n, doc.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")

	return cmd
}

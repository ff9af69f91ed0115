package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewNewCmd(svc **service.Service) *cobra.Command {
	var (
		content   string
		filePath  string
		fromStdin bool
		fresh     bool
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new tab",
		Long: `Create a new document tab and make it active.

Examples:
  notepad new                      # blank untitled tab
  notepad new notes.txt            # named tab
  notepad new --content "hello"    # tab with initial content
  cat draft.txt | notepad new      # content from stdin (auto-detected)
  notepad new --fresh              # close all tabs, start with one blank`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if fresh {
				if err := s.Fresh(); err != nil {
					return err
				}
				fmt.Printf("Started fresh with tab %d\n", s.Collection.ActiveID())
				return nil
			}

			// Auto-detect stdin if not explicitly set
			if !cmd.Flags().Changed("stdin") {
				stat, err := os.Stdin.Stat()
				if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}
			if fromStdin {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			doc, err := s.NewTab(name, content, filePath)
			if err != nil {
				return err
			}
			fmt.Printf("Created tab %d (%s)\n", doc.ID, doc.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "Initial content")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Associate with a file path without reading it")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read initial content from stdin")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Close all tabs and start with a single blank one")

	return cmd
}

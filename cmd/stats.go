package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewStatsCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats [id]",
		Short: "Show line, word and character counts for a tab",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}

			st, err := s.Stats(doc.ID)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(st, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal stats: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("%s: %d lines, %d words, %d characters\n",
				doc.DisplayName, st.Lines, st.Words, st.Chars)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

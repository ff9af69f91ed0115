package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewTabsCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "tabs",
		Short:   "List open tabs",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			docs := s.Collection.Documents()

			if jsonOutput {
				data, err := json.MarshalIndent(docs, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal tabs: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tFILE\tSTATE")
			for _, doc := range docs {
				state := ""
				if doc.Modified {
					state = "modified"
				}
				active := " "
				if doc.ID == s.Collection.ActiveID() {
					active = "*"
				}
				file := doc.FilePath
				if file == "" {
					file = "-"
				}
				fmt.Fprintf(w, "%s%d\t%s\t%s\t%s\n", active, doc.ID, doc.DisplayName, file, state)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output tabs as JSON")

	return cmd
}

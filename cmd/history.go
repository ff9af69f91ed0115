package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cmdconfig "github.com/mfiguera/notepad/cmd/config"
	"github.com/mfiguera/notepad/pkg/markup"
	"github.com/mfiguera/notepad/pkg/service"
)

func NewHistoryCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Work with a tab's edit history",
		Long: `List, inspect, restore, export and search the snapshot history kept
for each tab. Snapshots are newest first; position 0 is the most recent.`,
	}

	cmd.AddCommand(newHistoryListCmd(svc))
	cmd.AddCommand(newHistoryShowCmd(svc))
	cmd.AddCommand(newHistoryRestoreCmd(svc))
	cmd.AddCommand(newHistoryExportCmd(svc))
	cmd.AddCommand(newHistoryClearCmd(svc))
	cmd.AddCommand(newHistorySearchCmd(svc))

	return cmd
}

func newHistoryListCmd(svc **service.Service) *cobra.Command {
	var docArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a tab's history snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			entries := s.History.Entries(doc.ID)
			if len(entries) == 0 {
				fmt.Printf("No history for %s\n", doc.DisplayName)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tCAPTURED\tCHARS")
			for i, e := range entries {
				plain := markup.ForContent(e.Content).Plain(e.Content)
				fmt.Fprintf(w, "%d\t%s\t%d\n",
					i, e.Timestamp.Format("2006-01-02 15:04:05"), len([]rune(plain)))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")

	return cmd
}

func newHistoryShowCmd(svc **service.Service) *cobra.Command {
	var docArg string

	cmd := &cobra.Command{
		Use:   "show <position>",
		Short: "Print one history snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			pos, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}

			entries := s.History.Entries(doc.ID)
			if pos < 0 || pos >= len(entries) {
				return fmt.Errorf("position %d out of range (0-%d)", pos, len(entries)-1)
			}
			fmt.Print(entries[pos].Content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")

	return cmd
}

func newHistoryRestoreCmd(svc **service.Service) *cobra.Command {
	var docArg string

	cmd := &cobra.Command{
		Use:   "restore <position>",
		Short: "Restore a tab to a history snapshot",
		Long: `Restore a tab's content to the snapshot at the given position. The
content being replaced is captured as a new snapshot first, so a restore is
always reversible.

Examples:
  notepad history restore 0
  notepad history restore 3 --tab 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			pos, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}

			if err := s.RestoreHistory(doc.ID, pos); err != nil {
				return err
			}
			fmt.Printf("Restored %s to snapshot %d\n", doc.DisplayName, pos)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")

	return cmd
}

func newHistoryExportCmd(svc **service.Service) *cobra.Command {
	var docArg string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a tab's history as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			text, err := s.ExportHistory(doc.ID)
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Print(text)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Exported history of %s to %s\n", doc.DisplayName, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newHistoryClearCmd(svc **service.Service) *cobra.Command {
	var docArg string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard a tab's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDocFlag(s, docArg)
			if err != nil {
				return err
			}

			prompt := fmt.Sprintf("Discard the history of %q? This cannot be undone.", doc.DisplayName)
			if !cmdconfig.Yes && !ConfirmPrompt(os.Stdin, os.Stderr, prompt) {
				fmt.Println("Cancelled")
				return nil
			}

			if err := s.ClearHistory(doc.ID); err != nil {
				return err
			}
			fmt.Printf("Cleared history of %s\n", doc.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Tab id (default: active tab)")

	return cmd
}

func newHistorySearchCmd(svc **service.Service) *cobra.Command {
	var docArg string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search across history snapshots",
		Long: `Full-text search over history snapshots. Without --tab the search
spans every tab's history.

Examples:
  notepad history search "meeting notes"
  notepad history search budget --tab 2 --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var docID int64
			if docArg != "" {
				doc, err := resolveDocFlag(s, docArg)
				if err != nil {
					return err
				}
				docID = doc.ID
			}

			results, err := s.SearchHistory(args[0], docID, limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No matches")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TAB\tPOS\tCAPTURED\tSNIPPET")
			for _, r := range results {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n",
					r.DocID, r.Position, r.CapturedAt.Format("2006-01-02 15:04"), r.Snippet)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&docArg, "tab", "t", "", "Limit to one tab's history")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results")

	return cmd
}

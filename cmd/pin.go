package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewPinCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Keep favourite files on a pinned list",
		Long: `Pinned files survive clearing the recent list. Pin the active tab's
file, a tab by id, or a path directly.`,
	}

	cmd.AddCommand(newPinAddCmd(svc))
	cmd.AddCommand(newPinRemoveCmd(svc))
	cmd.AddCommand(newPinListCmd(svc))

	return cmd
}

func newPinAddCmd(svc **service.Service) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "add [id]",
		Short: "Pin a tab's file or a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if path != "" {
				if err := s.Registry.Pin(path); err != nil {
					return err
				}
				fmt.Printf("Pinned %s\n", path)
				return nil
			}

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}
			if err := s.PinDocument(doc.ID); err != nil {
				return err
			}
			fmt.Printf("Pinned %s\n", doc.FilePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Pin a path instead of a tab")

	return cmd
}

func newPinRemoveCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <path>",
		Short: "Unpin a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).Registry.Unpin(args[0]); err != nil {
				return err
			}
			fmt.Printf("Unpinned %s\n", args[0])
			return nil
		},
	}

	return cmd
}

func newPinListCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pinned files",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := (*svc).Registry.Pinned()
			if len(refs) == 0 {
				fmt.Println("No pinned files")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tPINNED")
			for _, r := range refs {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					r.Name, r.Path, r.Timestamp.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	return cmd
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cmdconfig "github.com/mfiguera/notepad/cmd/config"
	"github.com/mfiguera/notepad/pkg/service"
)

func NewRecentCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Work with recently opened files",
	}

	cmd.AddCommand(newRecentListCmd(svc))
	cmd.AddCommand(newRecentClearCmd(svc))

	return cmd
}

func newRecentListCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently opened files, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			refs := s.Registry.Recent()
			if len(refs) == 0 {
				fmt.Println("No recent files")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tOPENED")
			for _, r := range refs {
				pin := ""
				if s.Registry.IsPinned(r.Path) {
					pin = " *"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\n",
					r.Name, pin, r.Path, r.Timestamp.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	return cmd
}

func newRecentClearCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget all recently opened files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmdconfig.Yes && !ConfirmPrompt(os.Stdin, os.Stderr, "Clear the recent files list?") {
				fmt.Println("Cancelled")
				return nil
			}
			if err := (*svc).Registry.ClearRecents(); err != nil {
				return err
			}
			fmt.Println("Cleared recent files")
			return nil
		},
	}

	return cmd
}

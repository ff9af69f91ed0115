package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/autosave"
	"github.com/mfiguera/notepad/pkg/service"
)

func NewWatchCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the autosave loop until interrupted",
		Long: `Run the background autosave loop: the session snapshot is written on
one cadence and history snapshots are swept on another. Stops cleanly on
SIGINT or SIGTERM.

Examples:
  notepad watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := &autosave.Scheduler{
				SaveSession: func() {
					if err := s.PersistSession(); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: failed to persist session: %v\n", err)
					}
				},
				SweepHistory:    s.SweepHistory,
				SessionInterval: s.Config.SessionInterval,
				HistoryInterval: s.Config.HistoryInterval,
			}

			fmt.Printf("Autosaving session every %s, history every %s. Ctrl-C to stop.\n",
				sched.SessionInterval, sched.HistoryInterval)
			sched.Run(ctx)
			fmt.Println("Stopped")
			return nil
		},
	}

	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdfraven/pdfraven/internal/store"
)

func newSessionsCmd(o *options) *cobra.Command {
	var clearKey string
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored search sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := store.NewSessionStore(o.sessionDir)
			if err != nil {
				return err
			}
			list, err := sessions.List()
			if err != nil {
				return err
			}
			if clearKey != "" {
				for _, s := range list {
					if strings.HasPrefix(s.Key, clearKey) {
						return sessions.Clear(s.Key)
					}
				}
				return fmt.Errorf("no session matching key %q", clearKey)
			}
			if len(list) == 0 {
				fmt.Println("no stored sessions")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tDOCUMENT\tMODE\tPROGRESS\tSTATUS\tSTARTED")
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
					s.Key[:12], s.Document, s.Spec.Mode,
					s.CompletedOffset, s.TotalCount, s.Status, s.StartedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&clearKey, "clear", "", "delete the session with this key")
	return cmd
}

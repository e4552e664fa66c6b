package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/parsemapper/internal/store"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Path   string
	Failed bool
	Limit  int
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal <sqlite-file>",
		Short: "List journaled Parse calls",
		Long: `List the Parse calls recorded with --journal, oldest first.

Example:
  parsemapper journal ./calls.db
  parsemapper journal --failed --path /1/classes/GameScore ./calls.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "only calls whose path starts with this prefix")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "only failed calls")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of entries (0 = all)")

	return cmd
}

func runJournal(opts *JournalOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(dbPath); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err, map[string]string{"path": dbPath})
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err, map[string]string{"path": dbPath})
	}
	defer st.Close()

	entries, err := st.List(cmd.Context(), store.ListOptions{
		PathPrefix: opts.Path,
		FailedOnly: opts.Failed,
		Limit:      opts.Limit,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err, nil)
	}

	return formatter.Result(entries, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEQ\tWHEN\tMETHOD\tPATH\tSTATUS\tTOOK\tERROR")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
				e.Seq,
				e.RecordedAt.Format(time.RFC3339),
				e.Method,
				e.Path,
				e.Status,
				e.Duration,
				e.Error)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s call(s)\n", humanize.Comma(int64(len(entries))))
		return nil
	})
}

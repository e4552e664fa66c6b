package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/parsemapper/internal/adapter"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <class> <id>...",
		Short: "Delete objects by id",
		Long: `Delete Parse objects one at a time. The first failure stops the command
and objects deleted before it stay deleted.

Example:
  parsemapper delete GameScore Ed1nuqPvcm Kd83jhsPq1`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, className string, ids []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ctx := cmd.Context()
	s, err := openSession(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	records := make([]*adapter.Record, len(ids))
	for i, id := range ids {
		records[i] = &adapter.Record{ClassName: className, ID: id}
	}

	n, err := s.adapter.Delete(ctx, records)
	if err != nil {
		formatter.VerboseLog("%d of %d object(s) deleted before the failure", n, len(records))
		return remoteFailure(formatter, err)
	}

	return writeResult(formatter, className, records, "deleted")
}

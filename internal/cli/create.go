package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/parsemapper/internal/adapter"
)

// WriteResult is the JSON payload of the create, update and delete commands.
type WriteResult struct {
	Class string   `json:"class"`
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <class> <json-file>",
		Short: "Create objects from a JSON file",
		Long: `Create one Parse object per JSON object in the file. The file holds
either a single object or an array of objects. objectId, createdAt and
updatedAt are ignored.

Objects are created one at a time; the first failure stops the command and
objects created before it remain.

Example:
  parsemapper create GameScore ./scores.json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runCreate(opts *RootOptions, className, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	objects, err := readObjects(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeReadFailed, err, map[string]string{"path": path})
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	records := make([]*adapter.Record, len(objects))
	for i, obj := range objects {
		records[i] = adapter.NewRecord(className, obj)
	}

	n, err := s.adapter.Create(ctx, records)
	if err != nil {
		formatter.VerboseLog("%d of %d object(s) created before the failure", n, len(records))
		return remoteFailure(formatter, err)
	}

	return writeResult(formatter, className, records, "created")
}

// writeResult reports the records a write command touched.
func writeResult(formatter *OutputFormatter, className string, records []*adapter.Record, verb string) error {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	result := WriteResult{Class: className, Count: len(records), IDs: ids}
	return formatter.Result(result, func(w io.Writer) error {
		for _, id := range ids {
			fmt.Fprintf(w, "%s %s/%s\n", verb, className, id)
		}
		fmt.Fprintf(w, "%d object(s) %s\n", len(ids), verb)
		return nil
	})
}

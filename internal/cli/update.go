package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/parsemapper/internal/adapter"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <class> <id> <json-file>",
		Short: "Update an object with the fields in a JSON file",
		Long: `Send the fields of a JSON object to an existing Parse object.
createdAt and updatedAt are ignored.

Example:
  parsemapper update GameScore Ed1nuqPvcm ./patch.json`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(rootOpts, args[0], args[1], args[2], cmd)
		},
	}

	return cmd
}

func runUpdate(opts *RootOptions, className, id, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	objects, err := readObjects(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeReadFailed, err, map[string]string{"path": path})
	}
	if len(objects) != 1 {
		return formatter.Fail(ExitCommandError, ErrCodeReadFailed,
			fmt.Errorf("%s: expected one object, got %d", path, len(objects)), nil)
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	records := []*adapter.Record{{ClassName: className, ID: id}}
	if _, err := s.adapter.Update(ctx, objects[0], records); err != nil {
		return remoteFailure(formatter, err)
	}

	return writeResult(formatter, className, records, "updated")
}

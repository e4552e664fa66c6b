package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// FindResult is the JSON payload of the find command.
type FindResult struct {
	Class   string           `json:"class"`
	Count   int              `json:"count"`
	Results []map[string]any `json:"results"`
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <query-file>",
		Short: "Run a query against Parse",
		Long: `Translate a query document and run it as a single Parse find request.

Example:
  parsemapper find ./queries/top-scores.yaml
  parsemapper find --journal ./calls.db --format json ./queries/top-scores.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runFind(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	q, err := loadQuery(formatter, path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	rows, err := s.adapter.Read(ctx, q)
	if err != nil {
		return remoteFailure(formatter, err)
	}

	result := FindResult{Class: q.ClassName, Count: len(rows), Results: rows}
	return formatter.Result(result, func(w io.Writer) error {
		for _, row := range rows {
			line, err := json.Marshal(row)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(line))
		}
		fmt.Fprintf(w, "%d result(s) from %s\n", len(rows), q.ClassName)
		return nil
	})
}

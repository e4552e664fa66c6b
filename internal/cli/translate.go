package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/parsemapper/internal/condition"
	"github.com/roach88/parsemapper/internal/querydoc"
	"github.com/roach88/parsemapper/internal/where"
)

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <query-file>",
		Short: "Print the Parse request parameters for a query",
		Long: `Translate a query document (YAML, JSON or CUE) into the parameters
a Parse find request would carry. Nothing is sent over the network.

Example:
  parsemapper translate ./queries/top-scores.yaml
  parsemapper translate --format json ./queries/top-scores.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTranslate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	q, err := loadQuery(formatter, path)
	if err != nil {
		return err
	}

	if q.Conditions != nil {
		for _, w := range condition.Validate(q.Conditions).Warnings {
			formatter.VerboseLog("warning: %s", w)
		}
	}

	params, err := where.BuildParams(q)
	if err != nil {
		return remoteFailure(formatter, err)
	}

	return formatter.Result(params, func(w io.Writer) error {
		values, err := params.Values()
		if err != nil {
			return err
		}
		for _, key := range []string{"limit", "order", "skip", "where"} {
			if values.Has(key) {
				fmt.Fprintf(w, "%s=%s\n", key, values.Get(key))
			}
		}
		return nil
	})
}

// loadQuery reads a query document and converts it to a condition.Query.
func loadQuery(formatter *OutputFormatter, path string) (condition.Query, error) {
	doc, err := querydoc.LoadFile(path)
	if err != nil {
		return condition.Query{}, formatter.Fail(ExitCommandError, ErrCodeReadFailed, err, map[string]string{"path": path})
	}
	q, err := doc.Query()
	if err != nil {
		details := map[string]string{"path": path}
		var de *querydoc.DocumentError
		if errors.As(err, &de) && de.Path != "" {
			details["node"] = de.Path
		}
		return condition.Query{}, formatter.Fail(ExitCommandError, ErrCodeReadFailed, err, details)
	}
	formatter.VerboseLog("loaded query on %s from %s", q.ClassName, path)
	return q, nil
}

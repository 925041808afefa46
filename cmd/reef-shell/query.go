package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reefdb/reefdb-go/pkg/query"
	"github.com/reefdb/reefdb-go/pkg/values"
)

var queryCmd = &cobra.Command{
	Use:   "query [file]",
	Short: "Execute one wire-format query",
	Long:  "Reads a wire-format JSON expression from the given file (or stdin) and executes it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}

		body, err := io.ReadAll(src)
		if err != nil {
			return err
		}
		return runQuery(cmd.Context(), body, cmd.OutOrStdout())
	},
}

func runQuery(ctx context.Context, body []byte, out io.Writer) error {
	if !json.Valid(body) {
		return fmt.Errorf("query is not valid JSON")
	}

	res, err := newClient().Query(ctx, query.RawJSON(body))
	if err != nil {
		return err
	}
	return printValue(out, res)
}

func printValue(out io.Writer, v values.Value) error {
	rendered := query.Render(query.Wrap(v))
	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

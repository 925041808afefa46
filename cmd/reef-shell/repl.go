package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const prompt = "reef> "

// Wire-form keywords for tab completion.
var completionWords = []string{
	"get", "create", "create_class", "create_index", "update", "replace",
	"delete", "class", "index", "database", "ref", "match", "terms",
	"paginate", "size", "after", "before", "classes", "indexes", "login",
	"params", "object", "new_id", "now",
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive query session",
	Long:  "Reads one wire-format JSON expression per line and executes it against the configured endpoint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		line := liner.NewLiner()
		defer line.Close()

		line.SetCtrlCAborts(true)
		line.SetCompleter(func(input string) []string {
			var matches []string
			for _, w := range completionWords {
				if strings.HasPrefix(w, input) {
					matches = append(matches, w)
				}
			}
			return matches
		})

		historyFile := filepath.Join(os.TempDir(), ".reef_shell_history")
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")

		for {
			input, err := line.Prompt(prompt)
			if err != nil {
				// Ctrl+D or Ctrl+C ends the session.
				fmt.Fprintln(out)
				return nil
			}

			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				return nil
			}
			line.AppendHistory(input)

			if err := runQuery(cmd.Context(), []byte(input), out); err != nil {
				fmt.Fprintln(out, "error:", err)
			}
		}
	},
}

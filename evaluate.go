package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"primeadapt/internal/brackets"
	"primeadapt/internal/engine"
	"primeadapt/internal/model"
)

var (
	responsesFile string
	traceRules    bool
	householdSize int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the eligibility rules over a response set",
	Example: `  primeadapt evaluate -f responses.json --trace
  echo '{"residence_is_primary":"non"}' | primeadapt evaluate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if responsesFile != "-" {
			f, err := os.Open(responsesFile)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var r model.Responses
		if err := json.NewDecoder(in).Decode(&r); err != nil {
			return fmt.Errorf("invalid response set: %w", err)
		}

		var out interface{}
		if traceRules {
			v, trace := engine.Trace(r)
			out = map[string]interface{}{"verdict": v, "trace": trace}
		} else {
			out = engine.Evaluate(r)
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var bracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "Print the income brackets for a household size",
	RunE: func(cmd *cobra.Command, args []string) error {
		if householdSize < 1 {
			return fmt.Errorf("household must be at least 1, got %d", householdSize)
		}
		return printJSON(cmd.OutOrStdout(), brackets.Generate(householdSize))
	},
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

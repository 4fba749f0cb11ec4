package command

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/practice-dashboard/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Load the dashboard and print its statistics",
	Long:  "The summary command bootstraps the dashboard store against the backend and prints where each collection came from along with the dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		return printSummary(cmd, d)
	},
}

func printSummary(cmd *cobra.Command, d *deps) error {
	s := store.New(d.client, d.log, store.Options{})
	report := s.Load(cmd.Context())

	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"backend": d.client.BaseURL(),
		"report":  report,
		"stats":   s.Stats(),
	})
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

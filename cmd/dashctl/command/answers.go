package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/practice-dashboard/internal/service/answers"
	pkgvalidator "github.com/jwalitptl/practice-dashboard/pkg/validator"
)

var dryRun bool

var syncAnswersCmd = &cobra.Command{
	Use:   "sync-answers QUESTION_ID LABEL...",
	Short: "Synchronize the answers of a question",
	Long:  "The sync-answers command makes the stored answers of a question match the given labels, reusing existing answers where possible",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		return syncAnswers(cmd, d, args[0], args[1:])
	},
}

func syncAnswers(cmd *cobra.Command, d *deps, questionID string, labels []string) error {
	if !pkgvalidator.IsNumericID(questionID) {
		return fmt.Errorf("question id %q is not a backend id", questionID)
	}
	sync := answers.NewSynchronizer(d.client, d.log, nil)

	if dryRun {
		existing, err := sync.Existing(cmd.Context(), questionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "question %s has %d answers:\n", questionID, len(existing))
		for _, a := range existing {
			fmt.Fprintf(d.out, "  %s %s\n", a.ID, a.Label)
		}
		return nil
	}

	summary, err := sync.Sync(cmd.Context(), questionID, labels)
	fmt.Fprintf(d.out, "kept %d, created %d, updated %d, deleted %d\n",
		len(summary.Kept), len(summary.Created), len(summary.Updated), len(summary.Deleted))
	for _, a := range summary.Answers {
		fmt.Fprintf(d.out, "  %s %s\n", a.ID, a.Label)
	}
	return err
}

func init() {
	syncAnswersCmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list the current answers")
	rootCmd.AddCommand(syncAnswersCmd)
}

package cmds

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/tui/styles"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <evaluation-id>",
		Short: "Show the full critique for a stored evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			eval, err := newAPIClient(opts).GetEvaluation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderEvaluation(cmd.OutOrStdout(), eval)
			return nil
		},
	}
	return cmd
}

func renderEvaluation(w io.Writer, eval *client.Evaluation) {
	fmt.Fprintf(w, "%s %s  %s\n", styles.DecisionIcon(eval.Decision), eval.Decision, eval.FileName)
	fmt.Fprintf(w, "Overall score: %s   Domain: %s\n", formatScore(eval.OverallScore), eval.Domain)
	fmt.Fprintf(w, "Submitted: %s   ID: %s\n", formatWhen(eval.CreatedAt), eval.ID)

	if len(eval.Scores) > 0 {
		fmt.Fprintf(w, "\nScores\n")
		for _, s := range eval.Scores {
			fmt.Fprintf(w, "  %-24s %s / %s\n", s.Category, formatScore(s.Score), formatScore(s.MaxScore))
			for _, st := range s.Strengths {
				fmt.Fprintf(w, "    + %s\n", st)
			}
			for _, wk := range s.Weaknesses {
				fmt.Fprintf(w, "    - %s\n", wk)
			}
		}
	}

	if len(eval.CritiqueDomains) > 0 {
		fmt.Fprintf(w, "\nDomain relevance\n")
		for _, d := range eval.CritiqueDomains {
			fmt.Fprintf(w, "  %-24s %s\n", d.Domain, formatScore(d.Score))
		}
	}

	if len(eval.SectionScores) > 0 {
		fmt.Fprintf(w, "\nSection scores\n")
		for _, s := range eval.SectionScores {
			fmt.Fprintf(w, "  %-24s %s\n", s.Section, formatScore(s.Score))
		}
	}

	if fc := eval.FullCritique; fc != nil {
		fmt.Fprintf(w, "\nCritique\n")
		if fc.Summary != "" {
			fmt.Fprintf(w, "  %s\n", fc.Summary)
		}
		for _, issue := range sortedIssues(fc.Issues) {
			fmt.Fprintf(w, "  [%s] %s: %s\n", strings.ToUpper(issue.Severity), issue.Category, issue.Description)
		}
		for _, rec := range fc.Recommendations {
			fmt.Fprintf(w, "  (%s) %s\n", rec.Priority, rec.Recommendation)
		}
	}

	if ba := eval.BudgetAnalysis; ba != nil {
		fmt.Fprintf(w, "\nBudget\n")
		fmt.Fprintf(w, "  Total: %.0f\n", ba.TotalBudget)
		for _, item := range ba.Breakdown {
			fmt.Fprintf(w, "  %-24s %.0f (%.1f%%)\n", item.Category, item.Amount, item.Percentage)
		}
		for _, flag := range ba.Flags {
			fmt.Fprintf(w, "  %s %s\n", budgetFlagIcon(flag.Type), flag.Message)
		}
		if ba.Summary != "" {
			fmt.Fprintf(w, "  %s\n", ba.Summary)
		}
	}

	if pc := eval.PlagiarismCheck; pc != nil {
		fmt.Fprintf(w, "\nPlagiarism\n")
		if pc.Error != "" {
			fmt.Fprintf(w, "  check failed: %s\n", pc.Error)
		} else if pc.SimilarityScore != nil {
			fmt.Fprintf(w, "  Risk: %s (similarity %.2f)\n", pc.RiskLevel, *pc.SimilarityScore)
		} else {
			fmt.Fprintf(w, "  Risk: %s\n", pc.RiskLevel)
		}
		if pc.MatchedReferenceText != "" {
			fmt.Fprintf(w, "  Closest match: %s\n", pc.MatchedReferenceText)
		}
	}
}

// sortedIssues orders critique issues high severity first, preserving the
// backend's order within each severity.
func sortedIssues(issues []client.CritiqueIssue) []client.CritiqueIssue {
	rank := map[string]int{"high": 0, "medium": 1, "low": 2}
	out := make([]client.CritiqueIssue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(i, j int) bool {
		ri, ok := rank[strings.ToLower(out[i].Severity)]
		if !ok {
			ri = 3
		}
		rj, ok := rank[strings.ToLower(out[j].Severity)]
		if !ok {
			rj = 3
		}
		return ri < rj
	})
	return out
}

func budgetFlagIcon(kind string) string {
	switch strings.ToLower(kind) {
	case "error":
		return styles.IconError
	case "warning":
		return styles.IconWarning
	default:
		return styles.IconBullet
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

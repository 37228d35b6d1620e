package cmds

import (
	"text/tabwriter"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored evaluations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			evals, err := newAPIClient(opts).ListEvaluations(cmd.Context())
			if err != nil {
				return err
			}
			if len(evals) == 0 {
				cmd.Println("No evaluations yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = w.Write([]byte("ID\tFILE\tDECISION\tSCORE\tDOMAIN\tCREATED\n"))
			for _, e := range evals {
				_, _ = w.Write([]byte(
					e.ID + "\t" +
						e.FileName + "\t" +
						e.Decision + "\t" +
						formatScore(e.OverallScore) + "\t" +
						e.Domain + "\t" +
						formatWhen(e.CreatedAt) + "\n"))
			}
			return w.Flush()
		},
	}
	return cmd
}

// formatWhen renders a backend timestamp in local time. The backend emits
// ISO strings with varying sub-second precision, so parse leniently and
// fall back to the raw value.
func formatWhen(s string) string {
	if s == "" {
		return "-"
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}

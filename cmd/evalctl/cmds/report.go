package cmds

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report <evaluation-id>",
		Short: "Download the PDF report for an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			path := output
			if path == "" {
				path = id + ".pdf"
			}

			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(err, "create report file")
			}

			if err := newAPIClient(opts).DownloadReport(cmd.Context(), id, f); err != nil {
				_ = f.Close()
				_ = os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "close report file")
			}

			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to <id>.pdf)")
	return cmd
}

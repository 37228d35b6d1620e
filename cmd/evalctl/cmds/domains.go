package cmds

import (
	"github.com/spf13/cobra"
)

func newDomainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List the evaluation domains the backend can score against",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			domains, err := newAPIClient(opts).Domains(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range domains {
				cmd.Println(d)
			}
			return nil
		},
	}
	return cmd
}

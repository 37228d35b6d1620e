package cmds

import (
	"github.com/spf13/cobra"

	"github.com/go-go-golems/evalctl/pkg/client"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or change server-side evaluation settings",
	}
	cmd.AddCommand(newSettingsGetCmd())
	cmd.AddCommand(newSettingsSetCmd())
	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current evaluation settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			s, err := newAPIClient(opts).GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			printSettings(cmd, s)
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var maxBudget int64
	var chunkSize int64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update evaluation settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-budget") && !cmd.Flags().Changed("chunk-size") {
				return cmd.Help()
			}

			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			c := newAPIClient(opts)

			// Unchanged fields keep their server-side values.
			current, err := c.GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			next := client.Settings{
				MaxBudget: current.MaxBudget,
				ChunkSize: current.ChunkSize,
			}
			if cmd.Flags().Changed("max-budget") {
				next.MaxBudget = maxBudget
			}
			if cmd.Flags().Changed("chunk-size") {
				next.ChunkSize = chunkSize
			}

			updated, err := c.UpdateSettings(cmd.Context(), next)
			if err != nil {
				return err
			}
			printSettings(cmd, updated)
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxBudget, "max-budget", 0, "Maximum allowed proposal budget")
	cmd.Flags().Int64Var(&chunkSize, "chunk-size", 0, "Document chunk size used during indexing")
	return cmd
}

func printSettings(cmd *cobra.Command, s *client.Settings) {
	cmd.Printf("max_budget: %d\n", s.MaxBudget)
	cmd.Printf("chunk_size: %d\n", s.ChunkSize)
	if s.UpdatedAt != "" {
		cmd.Printf("updated:    %s\n", formatWhen(s.UpdatedAt))
	}
}

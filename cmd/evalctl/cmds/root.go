package cmds

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/config"
)

type rootOptions struct {
	Server  string
	Cfg     *config.File
	Timeout time.Duration
}

func AddCommands(root *cobra.Command) error {
	root.AddCommand(newSubmitCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newDomainsCmd())
	root.AddCommand(newSettingsCmd())
	return nil
}

func AddRootFlags(root *cobra.Command) {
	root.PersistentFlags().String("server", "", "Evaluator API base URL (defaults to $EVALCTL_SERVER, then config)")
	root.PersistentFlags().String("config", "", "Path to config file (defaults to .evalctl.yaml in the working directory)")
	root.PersistentFlags().Duration("timeout", 30*time.Second, "Default timeout for read requests")
}

func getRootOptions(cmd *cobra.Command) (rootOptions, error) {
	server, err := cmd.Root().PersistentFlags().GetString("server")
	if err != nil {
		return rootOptions{}, err
	}

	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return rootOptions{}, err
	}
	if cfgPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return rootOptions{}, err
		}
		cfgPath = config.DefaultPath(cwd)
	} else if !filepath.IsAbs(cfgPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return rootOptions{}, err
		}
		cfgPath = filepath.Join(cwd, cfgPath)
	}

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		return rootOptions{}, err
	}

	timeout, err := cmd.Root().PersistentFlags().GetDuration("timeout")
	if err != nil {
		return rootOptions{}, err
	}

	return rootOptions{
		Server:  config.ResolveServer(server, cfg),
		Cfg:     cfg,
		Timeout: timeout,
	}, nil
}

func newAPIClient(opts rootOptions) *client.Client {
	return client.New(client.Options{
		BaseURL:       opts.Server,
		MaxAttempts:   opts.Cfg.MaxAttempts,
		BaseDelay:     opts.Cfg.RetryBaseDelay,
		SubmitTimeout: opts.Cfg.SubmitTimeout,
		ReadTimeout:   opts.Timeout,
	})
}

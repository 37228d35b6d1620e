package cmds

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/config"
	"github.com/go-go-golems/evalctl/pkg/pipeline"
	"github.com/go-go-golems/evalctl/pkg/progress"
	"github.com/go-go-golems/evalctl/pkg/tui"
	"github.com/go-go-golems/evalctl/pkg/tui/models"
)

func newSubmitCmd() *cobra.Command {
	var domain string
	var checkPlagiarism bool
	var live bool
	var plain bool

	cmd := &cobra.Command{
		Use:   "submit <proposal.pdf|proposal.docx>",
		Short: "Submit a grant proposal for evaluation and track its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(err, "read proposal")
			}

			c := newAPIClient(opts)
			req := client.SubmitRequest{
				FileName:        filepath.Base(path),
				Content:         content,
				Domain:          domain,
				CheckPlagiarism: checkPlagiarism,
				SessionID:       uuid.NewString(),
			}

			if plain {
				eval, err := c.Submit(cmd.Context(), req)
				if err != nil {
					return submitError(err)
				}
				printEvaluationSummary(cmd, eval)
				return nil
			}

			return runSubmitUI(cmd, opts, c, req, live)
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "Override automatic domain detection")
	cmd.Flags().BoolVar(&checkPlagiarism, "check-plagiarism", false, "Run plagiarism detection")
	cmd.Flags().BoolVar(&live, "live", false, "Use the live progress channel instead of the simulator")
	cmd.Flags().BoolVar(&plain, "plain", false, "Skip the progress UI and print the result")
	return cmd
}

func runSubmitUI(cmd *cobra.Command, opts rootOptions, c *client.Client, req client.SubmitRequest, live bool) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus, err := tui.NewInMemoryBus()
	if err != nil {
		return err
	}
	tui.RegisterDomainToUITransformer(bus)

	model := models.NewProgressModel(req.FileName)
	program := tea.NewProgram(model,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	tui.RegisterUIForwarder(bus, program)

	progressURL, err := config.ProgressURL(opts.Server, req.SessionID)
	if err != nil {
		return err
	}
	tracker := progress.NewTracker(progress.TrackerOptions{
		Live:        live || opts.Cfg.LiveProgress,
		ProgressURL: progressURL,
		Interval:    opts.Cfg.SimulatorInterval,
		Step:        opts.Cfg.SimulatorStep,
		Pub:         bus.Publisher,
	})

	var result *client.Evaluation
	var submitErr error

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := bus.Run(egCtx)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		if err := tracker.Start(egCtx); err != nil {
			return err
		}
		<-egCtx.Done()
		tracker.Stop()
		return nil
	})
	eg.Go(func() error {
		eval, err := c.Submit(egCtx, req)
		if err != nil {
			submitErr = err
			tracker.Finish(pipeline.Failed{Message: submitMessage(err)})
			return nil
		}
		result = eval
		tracker.Finish(pipeline.Completed{})
		if err := tui.PublishEvaluationResult(bus.Publisher, *eval); err != nil {
			log.Warn().Err(err).Msg("publish evaluation result")
		}
		return nil
	})
	eg.Go(func() error {
		_, err := program.Run()
		cancel()
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "submit")
	}
	if submitErr != nil {
		return submitError(submitErr)
	}
	if result != nil {
		cmd.Printf("\nSaved as %s. Run `evalctl show %s` for the full critique.\n", result.ID, result.ID)
	}
	return nil
}

// submitMessage turns a submission failure into the text shown in the
// progress UI. Timeouts get actionable guidance; the backend may be
// cold-starting a large model.
func submitMessage(err error) string {
	if client.IsTimeout(err) {
		return "Evaluation timed out. The backend may still be loading its model; try again in a few minutes."
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

func submitError(err error) error {
	return errors.New(submitMessage(err))
}

func printEvaluationSummary(cmd *cobra.Command, eval *client.Evaluation) {
	cmd.Printf("%s  %s\n", eval.Decision, eval.FileName)
	cmd.Printf("Overall score: %.1f\n", eval.OverallScore)
	cmd.Printf("Domain: %s\n", eval.Domain)
	cmd.Printf("ID: %s\n", eval.ID)
	if eval.PlagiarismCheck != nil {
		risk := eval.PlagiarismCheck.RiskLevel
		if eval.PlagiarismCheck.SimilarityScore != nil {
			cmd.Printf("Plagiarism risk: %s (similarity %.2f)\n", risk, *eval.PlagiarismCheck.SimilarityScore)
		} else {
			cmd.Printf("Plagiarism risk: %s\n", risk)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

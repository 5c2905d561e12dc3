package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hiring-signals/internal/bootstrap"
	"hiring-signals/internal/feedback"
	"hiring-signals/internal/jobs"
	"hiring-signals/internal/shared/config"
	"hiring-signals/internal/shared/storage/db"
	"hiring-signals/internal/shared/telemetry"
)

const app = "feedbackctl"

type rootFlags struct {
	debug bool
	json  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:          app,
		Short:        app + " inspects and processes interview feedback files by job",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			telemetry.Configure(flags.json, flags.debug)
		},
	}
	root.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolVarP(&flags.json, "json", "j", false, "json format for logging")

	root.AddCommand(newViewCmd(), newProcessCmd(), newAnalyzeCmd(), newResolveCmd())
	return root
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <job-id>",
		Short: "Show the feedback file registered for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(cmd.Context(), cmd.OutOrStdout(), args[0], feedback.ActionView, false)
		},
	}
}

func newProcessCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "process <job-id>",
		Short: "Summarize and score a job's feedback file and save the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(cmd.Context(), cmd.OutOrStdout(), args[0], feedback.ActionDownload, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "process without writing to the feedback store")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <job-id> <view|download>",
		Short: "Run a named action against a job's feedback file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := feedback.ParseAction(args[1])
			if err != nil {
				return err
			}
			return analyze(cmd.Context(), cmd.OutOrStdout(), args[0], action, false)
		},
	}
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <job-name>",
		Short: "Resolve a free-text job name to a job id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := openDatastore(cmd.Context())
			if err != nil {
				return err
			}
			defer ds.Close()

			lookup := jobs.NewResolver(ds.Jobs, nil).Resolve(cmd.Context(), args[0])
			out := map[string]any{"outcome": lookup.Outcome.String()}
			switch lookup.Outcome {
			case jobs.Found:
				out["job"] = lookup.Job
				out["rule"] = lookup.Rule
			case jobs.UpstreamError:
				out["error"] = lookup.Err.Error()
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if lookup.Outcome != jobs.Found {
				return fmt.Errorf("no job found with name: %s", args[0])
			}
			return nil
		},
	}
}

func analyze(ctx context.Context, w io.Writer, jobID string, action feedback.Action, dryRun bool) error {
	cfg, ds, err := loadDatastore(ctx)
	if err != nil {
		return err
	}
	defer ds.Close()

	var store feedback.Store
	if dryRun {
		store = feedback.NewMemoryStore()
	}
	svc, err := bootstrap.NewFeedbackService(cfg, ds, store)
	if err != nil {
		return err
	}

	res, err := svc.Analyze(ctx, jobID, action)
	if err != nil {
		_ = printJSON(w, map[string]string{"status": "error", "message": err.Error()})
		return err
	}
	return printJSON(w, res)
}

func openDatastore(ctx context.Context) (*bootstrap.Datastore, error) {
	_, ds, err := loadDatastore(ctx)
	return ds, err
}

func loadDatastore(ctx context.Context) (config.Config, *bootstrap.Datastore, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	ds, err := bootstrap.OpenDatastore(ctx, cfg, db.DefaultCLIOptions())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, ds, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	"github.com/mohammadpnp/asset-import/internal/bootstrap"
	"github.com/mohammadpnp/asset-import/internal/config"
	"github.com/mohammadpnp/asset-import/internal/infrastructure/file"
	"github.com/mohammadpnp/asset-import/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "importctl",
		Short:        "Run and inspect bulk import jobs",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newStatusCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var jobFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a job file synchronously and print its result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(true)
			if err != nil {
				return err
			}
			logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

			spec, err := readJobSpec(cmd, file.NewLocalSource(cfg.BaseDir), jobFile)
			if err != nil {
				return err
			}

			storage, err := bootstrap.OpenStorage(cmd.Context(), cfg.DatabaseURL, cfg.AutoMigrate)
			if err != nil {
				return err
			}
			defer storage.Close()

			processor := app.NewProcessor(storage.Jobs, storage.Targets, app.ProcessorConfig{ChunkSize: cfg.ChunkSize}, logger)
			job, err := processor.Process(cmd.Context(), spec)
			if err != nil {
				if errors.Is(err, app.ErrInvalidJobSpec) || errors.Is(err, app.ErrDuplicateImportJob) {
					_ = printJSON(cmd.OutOrStdout(), app.NewSubmissionFailure(err))
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), app.NewSubmissionResult(job))
		},
	}

	cmd.Flags().StringVarP(&jobFile, "file", "f", "", "Path to a JSON job file ({jobId, companyId, jobType, items})")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Print the current record of an import job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(true)
			if err != nil {
				return err
			}

			storage, err := bootstrap.OpenStorage(cmd.Context(), cfg.DatabaseURL, false)
			if err != nil {
				return err
			}
			defer storage.Close()

			out, err := app.NewGetImportJob(storage.Jobs).Execute(cmd.Context(), app.GetImportJobInput{ID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

type sourceOpener interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

func readJobSpec(cmd *cobra.Command, source sourceOpener, path string) (app.JobSpec, error) {
	rc, err := source.Open(cmd.Context(), path)
	if err != nil {
		return app.JobSpec{}, err
	}
	defer rc.Close()

	var spec app.JobSpec
	if err := json.NewDecoder(rc).Decode(&spec); err != nil {
		return app.JobSpec{}, fmt.Errorf("decode job file: %w", err)
	}
	return spec, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

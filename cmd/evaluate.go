package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/pipeline"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one application against a job and print the result",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("job", "", "path to the job requirement JSON")
	evaluateCmd.Flags().String("application", "", "path to the application JSON")
	evaluateCmd.Flags().String("org", "", "organization whose criteria apply (default is the job's organization)")

	_ = evaluateCmd.MarkFlagRequired("job")
	_ = evaluateCmd.MarkFlagRequired("application")
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()
	rt := setup(ctx)
	defer rt.close()

	logger := rt.logger

	var job domain.JobRequirement
	if err := readJSON(cmd.Flag("job").Value.String(), &job); err != nil {
		logger.Fatal("reading the job", zap.Error(err))
	}

	var application domain.Application
	if err := readJSON(cmd.Flag("application").Value.String(), &application); err != nil {
		logger.Fatal("reading the application", zap.Error(err))
	}

	if org := cmd.Flag("org").Value.String(); org != "" {
		job.OrganizationID = org
	}

	if err := rt.store.SaveJob(ctx, &job); err != nil {
		logger.Fatal("saving the job", zap.Error(err))
	}

	application.JobID = job.ID
	if err := rt.store.SaveApplication(ctx, &application); err != nil {
		logger.Fatal("saving the application", zap.Error(err))
	}

	criteria, err := rt.store.GetCriteria(ctx, job.OrganizationID)
	if err != nil {
		logger.Fatal("loading criteria", zap.Error(err))
	}

	logger.Info("starting the evaluation",
		zap.String("version", version),
		zap.String("job_id", job.ID),
		zap.String("application_id", application.ID),
	)

	p := rt.pipelineFactory(ctx)()
	result, err := p.Evaluate(ctx, pipeline.Request{Job: &job, Application: &application, Criteria: criteria})
	if err != nil && result == nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}
	if err != nil {
		logger.Error("evaluation was not saved", zap.Error(err))
	}

	if err := printJSON(result); err != nil {
		logger.Fatal("printing the result", zap.Error(err))
	}
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

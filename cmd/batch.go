package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/pipeline"
)

type batchReport struct {
	JobID     string      `json:"jobId"`
	Evaluated int         `json:"evaluated"`
	Failed    int         `json:"failed"`
	Items     []batchItem `json:"items"`
	Took      string      `json:"took"`
}

type batchItem struct {
	ApplicationID string `json:"applicationId"`
	Overall       int    `json:"overallScore,omitempty"`
	Status        string `json:"internalStatus,omitempty"`
	Error         string `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every stored application of a job",
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("job-id", "", "job to evaluate applications for")
	batchCmd.Flags().IntP("concurrency", "c", 0, "applications evaluated at once (default from batch-concurrency)")

	_ = batchCmd.MarkFlagRequired("job-id")
}

func batch(cmd *cobra.Command) {
	ctx := context.Background()
	rt := setup(ctx)
	defer rt.close()

	logger := rt.logger
	jobID := cmd.Flag("job-id").Value.String()

	job, err := rt.store.GetJob(ctx, jobID)
	if err != nil {
		logger.Fatal("loading the job", zap.Error(err), zap.String("job_id", jobID))
	}

	applications, err := rt.store.ListApplications(ctx, jobID)
	if err != nil {
		logger.Fatal("listing applications", zap.Error(err))
	}

	if len(applications) == 0 {
		logger.Info("exiting", zap.String("reason", "no applications found"))
		return
	}

	criteria, err := rt.store.GetCriteria(ctx, job.OrganizationID)
	if err != nil {
		logger.Fatal("loading criteria", zap.Error(err))
	}

	requests := make([]pipeline.Request, 0, len(applications))
	for _, application := range applications {
		requests = append(requests, pipeline.Request{Job: job, Application: application, Criteria: criteria})
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = rt.config.BatchConcurrency
	}

	logger.Info("starting the batch", zap.Int("applications", len(requests)), zap.Int("concurrency", concurrency))

	started := time.Now()
	runner := &pipeline.Batch{
		New:         rt.pipelineFactory(ctx),
		Concurrency: concurrency,
		Logger:      logger,
	}
	outcomes := runner.Run(ctx, requests)

	report := batchReport{JobID: jobID, Items: make([]batchItem, 0, len(outcomes))}
	for _, o := range outcomes {
		item := batchItem{ApplicationID: o.ApplicationID}
		if o.Result != nil {
			item.Overall = o.Result.Overall
			item.Status = string(o.Result.InternalStatus)
			report.Evaluated++
		}
		if o.Err != nil {
			item.Error = o.Err.Error()
			report.Failed++
		}
		report.Items = append(report.Items, item)
	}
	report.Took = time.Since(started).Round(time.Millisecond).String()

	if err := printJSON(report); err != nil {
		logger.Fatal("printing the report", zap.Error(err))
	}
}

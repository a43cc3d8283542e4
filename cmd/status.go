package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
)

const (
	viewCandidate    = "candidate"
	viewOrganization = "organization"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of an evaluated application as a candidate or organization sees it",
	Run: func(cmd *cobra.Command, _ []string) {
		status(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("application-id", "", "evaluated application")
	statusCmd.Flags().String("as", viewCandidate, "viewer: candidate or organization")
	statusCmd.Flags().String("at", "", "RFC3339 time to evaluate visibility at (default is now)")

	_ = statusCmd.MarkFlagRequired("application-id")
}

func status(cmd *cobra.Command) {
	ctx := context.Background()
	rt := setup(ctx)
	defer rt.close()

	logger := rt.logger
	applicationID := cmd.Flag("application-id").Value.String()

	now := time.Now()
	if at := cmd.Flag("at").Value.String(); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			logger.Fatal("parsing --at", zap.Error(err))
		}
		now = parsed
	}

	result, err := rt.store.GetEvaluation(ctx, applicationID)
	if err != nil {
		logger.Fatal("loading the evaluation", zap.Error(err), zap.String("application_id", applicationID))
	}

	var view domain.StatusView
	switch as := cmd.Flag("as").Value.String(); as {
	case viewCandidate:
		view = domain.CandidateView(result, now)
	case viewOrganization:
		view = domain.OrganizationView(result)
	default:
		logger.Fatal("unknown viewer", zap.String("as", as), zap.Strings("allowed", []string{viewCandidate, viewOrganization}))
	}

	if err := printJSON(view); err != nil {
		logger.Fatal("printing the status", zap.Error(err))
	}
}

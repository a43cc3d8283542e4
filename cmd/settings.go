package cmd

import (
	"context"
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage per-organization evaluation criteria",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the criteria of an organization",
	Run: func(cmd *cobra.Command, _ []string) {
		settingsGet(cmd)
	},
}

var settingsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Validate and save the criteria of an organization",
	Run: func(cmd *cobra.Command, _ []string) {
		settingsUpdate(cmd)
	},
}

var settingsTestGitHubCmd = &cobra.Command{
	Use:   "test-github",
	Short: "Check the configured GitHub credential",
	Run: func(_ *cobra.Command, _ []string) {
		settingsTestGitHub()
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsUpdateCmd, settingsTestGitHubCmd)

	settingsCmd.PersistentFlags().String("org", "", "organization id")

	settingsUpdateCmd.Flags().StringP("file", "f", "", "path to the criteria JSON")
	settingsUpdateCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	_ = settingsUpdateCmd.MarkFlagRequired("file")
}

func settingsGet(cmd *cobra.Command) {
	ctx := context.Background()
	rt := setup(ctx)
	defer rt.close()

	criteria, err := rt.store.GetCriteria(ctx, cmd.Flag("org").Value.String())
	if err != nil {
		rt.logger.Fatal("loading criteria", zap.Error(err))
	}

	if err := printJSON(criteria); err != nil {
		rt.logger.Fatal("printing criteria", zap.Error(err))
	}
}

func settingsUpdate(cmd *cobra.Command) {
	ctx := context.Background()
	rt := setup(ctx)
	defer rt.close()

	logger := rt.logger
	org := cmd.Flag("org").Value.String()

	// Start from the current settings so a partial file only changes what it names.
	criteria, err := rt.store.GetCriteria(ctx, org)
	if err != nil {
		logger.Fatal("loading criteria", zap.Error(err))
	}
	if err := readJSON(cmd.Flag("file").Value.String(), &criteria); err != nil {
		logger.Fatal("reading criteria", zap.Error(err))
	}

	if err := criteria.Validate(); err != nil {
		logger.Fatal("criteria rejected", zap.Error(err))
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		_ = printJSON(criteria)

		confirm := promptui.Prompt{Label: "Save these criteria", IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if err := rt.store.UpdateCriteria(ctx, org, criteria); err != nil {
		logger.Fatal("saving criteria", zap.Error(err))
	}

	logger.Info("criteria saved",
		zap.String("organization_id", org),
		zap.Int("minimum_project_score", criteria.MinimumProjectScore),
		zap.Bool("ai_analysis", criteria.EnableAIAnalysis),
		zap.Bool("enrichment", criteria.Enrichment.Enabled),
	)
}

func settingsTestGitHub() {
	ctx := context.Background()
	rt := setup(ctx)
	defer rt.close()

	logger := rt.logger

	gh, err := rt.githubClient()
	if err != nil {
		logger.Fatal("loading github token", zap.Error(err))
	}

	login, err := gh.CheckConnection(ctx)
	if errors.Is(err, domain.ErrCredentialMissing) {
		logger.Fatal("github token is not configured",
			zap.String("hint", "set GITHUB_TOKEN_FILE environment variable or the 'github.token-file' key in the configuration file"),
		)
	}
	if err != nil {
		logger.Fatal("github connection failed", zap.Error(err))
	}

	logger.Info("github connection ok", zap.String("login", login))
}

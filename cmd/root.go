package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hire-scorer/internal/domain"
)

const (
	app = "hire-scorer"
)

type Config struct {
	Database         string                     `mapstructure:"database"`
	VisibilityDelay  time.Duration              `mapstructure:"visibility-delay"`
	BatchConcurrency int                        `mapstructure:"batch-concurrency"`
	Criteria         *domain.EvaluationCriteria `mapstructure:"criteria"`
	GitHub           *GitHubConfig              `mapstructure:"github"`
	Embedding        *EmbeddingConfig           `mapstructure:"embedding"`
	AI               *AIConfig                  `mapstructure:"ai"`
}

type GitHubConfig struct {
	APIURL            string        `mapstructure:"api-url"`
	TokenFile         string        `mapstructure:"token-file"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
}

type EmbeddingConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	APIURL       string        `mapstructure:"api-url"`
	Model        string        `mapstructure:"model"`
	TokenFile    string        `mapstructure:"token-file"`
	Timeout      time.Duration `mapstructure:"timeout"`
	WaitForModel bool          `mapstructure:"wait-for-model"`
}

type AIConfig struct {
	Enabled      bool               `mapstructure:"enabled"`
	Provider     string             `mapstructure:"provider"`
	Blend        bool               `mapstructure:"blend"`
	BlendAlpha   float64            `mapstructure:"blend-alpha"`
	Review       bool               `mapstructure:"review"`
	Timeout      time.Duration      `mapstructure:"timeout"`
	MaxTokens    int                `mapstructure:"max-tokens"`
	Temperature  float32            `mapstructure:"temperature"`
	MaxLogLength int                `mapstructure:"max-log-length"`
	HuggingFace  *HuggingFaceConfig `mapstructure:"huggingface"`
	Gemini       *GeminiConfig      `mapstructure:"gemini"`
}

type HuggingFaceConfig struct {
	APIURL    string `mapstructure:"api-url"`
	Model     string `mapstructure:"model"`
	TokenFile string `mapstructure:"token-file"`
}

type GeminiConfig struct {
	Model      string `mapstructure:"model"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hire-scorer evaluates job applications against a rubric, repository activity and AI review",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"github.token-file":         "GITHUB_TOKEN_FILE",
		"embedding.token-file":      "HF_TOKEN_FILE",
		"ai.huggingface.token-file": "HF_TOKEN_FILE",
		"ai.gemini.api-key-file":    "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetEnvPrefix("HIRE_SCORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("database", "hire-scorer.db")
	viper.SetDefault("visibility-delay", domain.DefaultVisibilityDelay)
	viper.SetDefault("batch-concurrency", 4)
	viper.SetDefault("ai.blend", true)
	viper.SetDefault("ai.review", true)
	viper.SetDefault("embedding.wait-for-model", true)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hire-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().String("database", "", "path to the sqlite database")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional. An explicit one must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	err := viper.Unmarshal(config)
	if err != nil {
		return config, err
	}

	if config.Criteria != nil {
		// Keys missing from the file keep their defaults.
		defaults := domain.DefaultCriteria()
		if err := viper.UnmarshalKey("criteria", &defaults); err != nil {
			return config, err
		}
		config.Criteria = &defaults
	}

	return config, nil
}

package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Warehouse WarehouseConfig `yaml:"warehouse" mapstructure:"warehouse"`
	Generate  GenerateConfig  `yaml:"generate" mapstructure:"generate"`
	Eval      EvalConfig      `yaml:"eval" mapstructure:"eval"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// WarehouseConfig configures the sqlite snapshot.
type WarehouseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// GenerateConfig sets the seed and the row targets for the canonical dataset.
// Row targets are approximate for the tables whose rows are derived per
// parent entity.
type GenerateConfig struct {
	Seed                int64 `yaml:"seed" mapstructure:"seed"`
	Agents              int   `yaml:"agents" mapstructure:"agents"`
	Insureds            int   `yaml:"insureds" mapstructure:"insureds"`
	Policies            int   `yaml:"policies" mapstructure:"policies"`
	Coverages           int   `yaml:"coverages" mapstructure:"coverages"`
	Claims              int   `yaml:"claims" mapstructure:"claims"`
	ClaimTransactions   int   `yaml:"claim_transactions" mapstructure:"claim_transactions"`
	PremiumTransactions int   `yaml:"premium_transactions" mapstructure:"premium_transactions"`
	Quotes              int   `yaml:"quotes" mapstructure:"quotes"`
}

// EvalConfig configures the scoring harness.
type EvalConfig struct {
	QuestionsPath    string  `yaml:"questions_path" mapstructure:"questions_path"`
	GoldAnswersPath  string  `yaml:"gold_answers_path" mapstructure:"gold_answers_path"`
	ResultsDir       string  `yaml:"results_dir" mapstructure:"results_dir"`
	DefaultTolerance float64 `yaml:"default_tolerance" mapstructure:"default_tolerance"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INSBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("warehouse.path", "insurance_pc.db")
	v.SetDefault("generate.seed", 42)
	v.SetDefault("generate.agents", 50)
	v.SetDefault("generate.insureds", 2000)
	v.SetDefault("generate.policies", 5000)
	v.SetDefault("generate.coverages", 12000)
	v.SetDefault("generate.claims", 3000)
	v.SetDefault("generate.claim_transactions", 15000)
	v.SetDefault("generate.premium_transactions", 20000)
	v.SetDefault("generate.quotes", 8000)
	v.SetDefault("eval.questions_path", "evals/questions.yaml")
	v.SetDefault("eval.gold_answers_path", "evals/gold_answers.yaml")
	v.SetDefault("eval.results_dir", "evals/results")
	v.SetDefault("eval.default_tolerance", 0.05)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

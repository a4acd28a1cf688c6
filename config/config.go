package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging        LoggingConfig   `yaml:"logging"`
	GeminiModel    string          `yaml:"gemini_model"`
	Embedding      EmbeddingConfig `yaml:"embedding"`
	Inference      InferenceConfig `yaml:"inference"`
	PostFetchLimit int             `yaml:"post_fetch_limit"`

	// SeverityMeanPolicy controls how the unscored sentinel (-1) participates
	// in aggregated severity means: "literal" keeps it in the mean,
	// "scored-only" excludes it.
	SeverityMeanPolicy string `yaml:"severity_mean_policy"`

	TopicCategories  []string `yaml:"topic_categories"`
	CategoryPriority []string `yaml:"category_priority"`
	ValidIndustries  []string `yaml:"valid_industries"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// EmbeddingConfig points at the Ollama-compatible embedding endpoint.
type EmbeddingConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// InferenceConfig points at the text-classification inference server and the
// models used for emotion, zero-shot category and severity classification.
type InferenceConfig struct {
	Endpoint      string `yaml:"endpoint"`
	EmotionModel  string `yaml:"emotion_model"`
	ZeroShotModel string `yaml:"zero_shot_model"`
	SeverityModel string `yaml:"severity_model"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func applyDefaults(c *AppConfig) {
	if c.Embedding.Endpoint == "" {
		c.Embedding.Endpoint = "http://localhost:11434"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "all-minilm"
	}
	if c.PostFetchLimit <= 0 {
		c.PostFetchLimit = 10
	}
	if c.SeverityMeanPolicy == "" {
		c.SeverityMeanPolicy = "literal"
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// RequireEnv returns the named environment variables, or an error listing
// every missing one so a run can abort before any work is done.
func RequireEnv(keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	var missing []string
	for _, key := range keys {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
			continue
		}
		values[key] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return values, nil
}

// DatabaseDSN composes the Postgres DSN from DB_* environment variables.
func DatabaseDSN() (string, error) {
	env, err := RequireEnv("DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME")
	if err != nil {
		return "", err
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		env["DB_HOST"], env["DB_USER"], env["DB_PASSWORD"], env["DB_NAME"], port)
	return dsn, nil
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

type Config struct {
	Server struct {
		Port    int      `yaml:"port"`
		APIKeys []string `yaml:"apiKeys"`

		RateLimit struct {
			Enabled    bool `yaml:"enabled"`
			Capacity   int  `yaml:"capacity"`
			RefillRate int  `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Redis struct {
		Enabled    bool   `yaml:"enabled"`
		URL        string `yaml:"url"`
		TTLMinutes int    `yaml:"ttlMinutes"`
	} `yaml:"redis"`

	AI struct {
		Preference            []string       `yaml:"preference"`
		RetryAttempts         int            `yaml:"retryAttempts"`
		RetryDelayMS          int            `yaml:"retryDelayMs"`
		RequestTimeoutSeconds int            `yaml:"requestTimeoutSeconds"`
		MaxContentChars       int            `yaml:"maxContentChars"`
		MaxOutputTokens       int            `yaml:"maxOutputTokens"`
		Temperature           float32        `yaml:"temperature"`
		OpenAI                ProviderConfig `yaml:"openai"`
		Gemini                ProviderConfig `yaml:"gemini"`
		Claude                ProviderConfig `yaml:"claude"`
	} `yaml:"ai"`

	Costs struct {
		WindowHours int              `yaml:"windowHours"`
		Limits      map[string]int64 `yaml:"limits"` // provider -> chars per window
	} `yaml:"costs"`
}

// Load baca file config.yaml, lalu terapkan default dan fallback env var
// untuk API key provider.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if len(c.AI.Preference) == 0 {
		c.AI.Preference = []string{"openai", "gemini", "claude"}
	}
	if c.AI.RetryAttempts == 0 {
		c.AI.RetryAttempts = 2
	}
	if c.AI.RetryDelayMS == 0 {
		c.AI.RetryDelayMS = 500
	}
	if c.AI.RequestTimeoutSeconds == 0 {
		c.AI.RequestTimeoutSeconds = 60
	}
	if c.AI.MaxContentChars == 0 {
		c.AI.MaxContentChars = 50000
	}
	if c.AI.MaxOutputTokens == 0 {
		c.AI.MaxOutputTokens = 2000
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.7
	}
	if c.Costs.WindowHours == 0 {
		c.Costs.WindowHours = 24
	}
	if c.Redis.TTLMinutes == 0 {
		c.Redis.TTLMinutes = 60
	}

	if c.AI.OpenAI.APIKey == "" {
		c.AI.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.AI.Gemini.APIKey == "" {
		c.AI.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.AI.Claude.APIKey == "" {
		c.AI.Claude.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.AI.RetryDelayMS) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.AI.RequestTimeoutSeconds) * time.Second
}

func (c *Config) CostWindow() time.Duration {
	return time.Duration(c.Costs.WindowHours) * time.Hour
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLMinutes) * time.Minute
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

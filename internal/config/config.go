package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "CONTENT_PIPELINE_CONFIG"
	modelAPIKeyEnv       = "MODEL_API_KEY"
	modelNameEnv         = "MODEL_NAME"
	trackerTokenEnv      = "GITHUB_TOKEN"
	trackerRepoEnv       = "GITHUB_REPOSITORY"
	blogTokenEnv         = "HASHNODE_TOKEN"
	blogPublicationEnv   = "HASHNODE_PUBLICATION_ID"
	socialTokenEnv       = "LINKEDIN_ACCESS_TOKEN"
	socialAuthorEnv      = "LINKEDIN_USER_URN"
	mailUserEnv          = "EMAIL_USER"
	mailPasswordEnv      = "EMAIL_PASS"
	mailReceiverEnv      = "EMAIL_RECEIVER"
	topicOverrideEnv     = "CUSTOM_TOPIC"
	defaultHistoryPath   = "topic_history.json"
	defaultLedgerPath    = "publish_ledger.db"
	defaultSMTPAddr      = "smtp.gmail.com:465"
	defaultWatchInterval = 5 * time.Second
	defaultWatchAttempts = 12
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Model   ModelConfig   `yaml:"model"`
	Tracker TrackerConfig `yaml:"tracker"`
	Blog    BlogConfig    `yaml:"blog"`
	Social  SocialConfig  `yaml:"social"`
	Mail    MailConfig    `yaml:"mail"`
	History HistoryConfig `yaml:"history"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Prompts PromptConfig  `yaml:"prompts"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ModelConfig defines how to contact the generative-model endpoint.
type ModelConfig struct {
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	MaxTokens   int64   `yaml:"maxTokens"`
	Temperature float64 `yaml:"temperature"`
}

// TrackerConfig identifies the issue-tracker repository holding review tickets.
type TrackerConfig struct {
	BaseURL    string `yaml:"baseUrl"`
	Repository string `yaml:"repository"` // owner/name
	Token      string `yaml:"token"`
}

// BlogConfig wires the blogging platform's GraphQL endpoint.
type BlogConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Token         string `yaml:"token"`
	PublicationID string `yaml:"publicationId"`
}

// SocialConfig wires the professional-network posting API.
type SocialConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Token     string `yaml:"token"`
	AuthorURN string `yaml:"authorUrn"`
}

// MailConfig carries SMTP relay settings for review notifications.
type MailConfig struct {
	SMTPAddr string `yaml:"smtpAddr"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Receiver string `yaml:"receiver"`
}

// HistoryConfig locates the published-topic archive file.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig locates the publish-state database.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// PromptConfig parameterizes the generation templates.
type PromptConfig struct {
	Audience       string   `yaml:"audience"`
	Focus          string   `yaml:"focus"`
	SocialMaxChars int      `yaml:"socialMaxChars"`
	MaxEmoji       int      `yaml:"maxEmoji"`
	BannedTerms    []string `yaml:"bannedTerms"`
}

// WatchConfig bounds the draft-presence poll.
type WatchConfig struct {
	IntervalSeconds int `yaml:"intervalSeconds"`
	Attempts        int `yaml:"attempts"`
}

// Interval resolves the poll interval as a duration.
func (w WatchConfig) Interval() time.Duration {
	if w.IntervalSeconds <= 0 {
		return defaultWatchInterval
	}
	return time.Duration(w.IntervalSeconds) * time.Second
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// TopicOverride returns the caller-supplied topic from the trigger surface.
func TopicOverride() string {
	return os.Getenv(topicOverrideEnv)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(modelAPIKeyEnv); v != "" {
		c.Model.APIKey = v
	}
	if v := os.Getenv(modelNameEnv); v != "" {
		c.Model.Model = v
	}
	if v := os.Getenv(trackerTokenEnv); v != "" {
		c.Tracker.Token = v
	}
	if v := os.Getenv(trackerRepoEnv); v != "" {
		c.Tracker.Repository = v
	}
	if v := os.Getenv(blogTokenEnv); v != "" {
		c.Blog.Token = v
	}
	if v := os.Getenv(blogPublicationEnv); v != "" {
		c.Blog.PublicationID = v
	}
	if v := os.Getenv(socialTokenEnv); v != "" {
		c.Social.Token = v
	}
	if v := os.Getenv(socialAuthorEnv); v != "" {
		c.Social.AuthorURN = v
	}
	if v := os.Getenv(mailUserEnv); v != "" {
		c.Mail.User = v
	}
	if v := os.Getenv(mailPasswordEnv); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv(mailReceiverEnv); v != "" {
		c.Mail.Receiver = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Model.BaseURL != "" {
		base.Model.BaseURL = override.Model.BaseURL
	}
	if override.Model.Model != "" {
		base.Model.Model = override.Model.Model
	}
	if override.Model.APIKey != "" {
		base.Model.APIKey = override.Model.APIKey
	}
	if override.Model.MaxTokens > 0 {
		base.Model.MaxTokens = override.Model.MaxTokens
	}
	if override.Model.Temperature > 0 {
		base.Model.Temperature = override.Model.Temperature
	}

	if override.Tracker.BaseURL != "" {
		base.Tracker.BaseURL = override.Tracker.BaseURL
	}
	if override.Tracker.Repository != "" {
		base.Tracker.Repository = override.Tracker.Repository
	}
	if override.Tracker.Token != "" {
		base.Tracker.Token = override.Tracker.Token
	}

	if override.Blog.Endpoint != "" {
		base.Blog.Endpoint = override.Blog.Endpoint
	}
	if override.Blog.Token != "" {
		base.Blog.Token = override.Blog.Token
	}
	if override.Blog.PublicationID != "" {
		base.Blog.PublicationID = override.Blog.PublicationID
	}

	if override.Social.Endpoint != "" {
		base.Social.Endpoint = override.Social.Endpoint
	}
	if override.Social.Token != "" {
		base.Social.Token = override.Social.Token
	}
	if override.Social.AuthorURN != "" {
		base.Social.AuthorURN = override.Social.AuthorURN
	}

	if override.Mail.SMTPAddr != "" {
		base.Mail.SMTPAddr = override.Mail.SMTPAddr
	}
	if override.Mail.User != "" {
		base.Mail.User = override.Mail.User
	}
	if override.Mail.Password != "" {
		base.Mail.Password = override.Mail.Password
	}
	if override.Mail.Receiver != "" {
		base.Mail.Receiver = override.Mail.Receiver
	}

	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}
	if override.Ledger.Path != "" {
		base.Ledger.Path = override.Ledger.Path
	}

	if override.Prompts.Audience != "" {
		base.Prompts.Audience = override.Prompts.Audience
	}
	if override.Prompts.Focus != "" {
		base.Prompts.Focus = override.Prompts.Focus
	}
	if override.Prompts.SocialMaxChars > 0 {
		base.Prompts.SocialMaxChars = override.Prompts.SocialMaxChars
	}
	if override.Prompts.MaxEmoji > 0 {
		base.Prompts.MaxEmoji = override.Prompts.MaxEmoji
	}
	if len(override.Prompts.BannedTerms) > 0 {
		base.Prompts.BannedTerms = override.Prompts.BannedTerms
	}

	if override.Watch.IntervalSeconds > 0 {
		base.Watch.IntervalSeconds = override.Watch.IntervalSeconds
	}
	if override.Watch.Attempts > 0 {
		base.Watch.Attempts = override.Watch.Attempts
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Model: ModelConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   1500,
			Temperature: 0.7,
		},
		Tracker: TrackerConfig{BaseURL: "https://api.github.com"},
		Blog: BlogConfig{
			Endpoint: "https://gql.hashnode.com",
		},
		Social: SocialConfig{
			Endpoint: "https://api.linkedin.com/v2/ugcPosts",
		},
		Mail:    MailConfig{SMTPAddr: defaultSMTPAddr},
		History: HistoryConfig{Path: defaultHistoryPath},
		Ledger:  LedgerConfig{Path: defaultLedgerPath},
		Prompts: PromptConfig{
			Audience:       "Senior Software Engineers",
			Focus:          "Backend Engineering, System Design, or Generative AI",
			SocialMaxChars: 1200,
			MaxEmoji:       3,
		},
		Watch: WatchConfig{IntervalSeconds: 5, Attempts: defaultWatchAttempts},
	}
}

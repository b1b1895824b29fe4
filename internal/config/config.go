package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Jira connection settings
	Jira JiraConfig `yaml:"jira" mapstructure:"jira"`

	// Relevance filter rules
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`

	// DOT output styling
	Graph GraphConfig `yaml:"graph" mapstructure:"graph"`
}

type JiraConfig struct {
	Server   string `yaml:"server" mapstructure:"server"`
	Username string `yaml:"username" mapstructure:"username"`

	// Requests per second against the Jira API
	RateLimit int `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Page size for search requests
	PageSize int `yaml:"page_size" mapstructure:"page_size"`

	// Hard cap on issues fetched per query
	MaxIssues int `yaml:"max_issues" mapstructure:"max_issues"`

	// Custom field ID carrying severity, e.g. "customfield_10200".
	// Empty means the tracker has no severity field.
	SeverityField string `yaml:"severity_field" mapstructure:"severity_field"`

	// Projects merged into the lookup set in addition to the target
	// project, so cross-project blocks links can be resolved.
	ExtraProjects []string `yaml:"extra_projects" mapstructure:"extra_projects"`
}

type FilterConfig struct {
	ResolvedStatuses   []string `yaml:"resolved_statuses" mapstructure:"resolved_statuses"`
	RelevantPriorities []string `yaml:"relevant_priorities" mapstructure:"relevant_priorities"`
	RelevantSeverities []string `yaml:"relevant_severities" mapstructure:"relevant_severities"`
}

type GraphConfig struct {
	Layout  string `yaml:"layout" mapstructure:"layout"`
	Overlap string `yaml:"overlap" mapstructure:"overlap"`
	Sep     string `yaml:"sep" mapstructure:"sep"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Jira: JiraConfig{
			RateLimit: 10,
			PageSize:  50,
			MaxIssues: 1000,
		},
		Filter: FilterConfig{
			ResolvedStatuses:   []string{"Done", "Resolved", "Fertig", "Closed"},
			RelevantPriorities: []string{"High", "Highest"},
			RelevantSeverities: []string{"Major"},
		},
		Graph: GraphConfig{
			Layout:  "neato",
			Overlap: "false",
			Sep:     "+1",
		},
	}
}

// Load loads configuration from file, environment and defaults.
// Precedence: environment > config file > defaults.
func Load(path string) (*Config, error) {
	// .env files feed the environment before viper reads it
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("jira.rate_limit", cfg.Jira.RateLimit)
	v.SetDefault("jira.page_size", cfg.Jira.PageSize)
	v.SetDefault("jira.max_issues", cfg.Jira.MaxIssues)
	v.SetDefault("filter.resolved_statuses", cfg.Filter.ResolvedStatuses)
	v.SetDefault("filter.relevant_priorities", cfg.Filter.RelevantPriorities)
	v.SetDefault("filter.relevant_severities", cfg.Filter.RelevantSeverities)
	v.SetDefault("graph.layout", cfg.Graph.Layout)
	v.SetDefault("graph.overlap", cfg.Graph.Overlap)
	v.SetDefault("graph.sep", cfg.Graph.Sep)

	v.SetEnvPrefix("JIRASCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jirascope"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// Missing config file is fine, defaults apply
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Direct env overrides for the common connection settings
	if server := os.Getenv("JIRASCOPE_SERVER"); server != "" {
		cfg.Jira.Server = server
	}
	if user := os.Getenv("JIRASCOPE_USER"); user != "" {
		cfg.Jira.Username = user
	}

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	candidates := []string{".env.local", ".env"}
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds GitLab and JIRA connection settings plus ticket defaults.
type Config struct {
	GitLab   GitLabConfig       `yaml:"gitlab"   mapstructure:"gitlab"`
	Jira     JiraConfig         `yaml:"jira"     mapstructure:"jira"`
	Defaults Defaults           `yaml:"defaults" mapstructure:"defaults"`
	Mappings map[string]Mapping `yaml:"project_mappings,omitempty" mapstructure:"project_mappings"`
}

// GitLabConfig holds GitLab connection settings.
type GitLabConfig struct {
	URL   string `yaml:"url"   mapstructure:"url"`
	Token string `yaml:"token" mapstructure:"token"`
}

// JiraConfig holds JIRA connection settings and the default project.
type JiraConfig struct {
	URL        string `yaml:"url"         mapstructure:"url"`
	Email      string `yaml:"email"       mapstructure:"email"`
	Token      string `yaml:"token"       mapstructure:"token"`
	ProjectKey string `yaml:"project_key" mapstructure:"project_key"`
}

// Defaults are applied to created tickets unless overridden on the command
// line.
type Defaults struct {
	IssueType  string   `yaml:"issue_type,omitempty" mapstructure:"issue_type"`
	Labels     []string `yaml:"labels,omitempty"     mapstructure:"labels"`
	Components []string `yaml:"components,omitempty" mapstructure:"components"`
	Priority   string   `yaml:"priority,omitempty"   mapstructure:"priority"`
}

// Mapping routes a GitLab project path to a JIRA project key.
type Mapping struct {
	JiraProjectKey string `yaml:"jira_project_key" mapstructure:"jira_project_key"`
}

// DefaultPath returns the default config file path (~/.gitlab2jira.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitlab2jira.yaml"
	}
	return filepath.Join(home, ".gitlab2jira.yaml")
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Env var overrides
	v.BindEnv("gitlab.url", "GITLAB_URL")
	v.BindEnv("gitlab.token", "GITLAB_TOKEN")
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("jira.project_key", "JIRA_PROJECT_KEY")

	// Read the config file (ignore "not found" errors so env vars still work)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required fields are present.
func (c Config) Validate() error {
	if c.GitLab.URL == "" {
		return fmt.Errorf("GitLab URL is required (set in config file or GITLAB_URL env var)")
	}
	if c.GitLab.Token == "" {
		return fmt.Errorf("GitLab token is required (set in config file or GITLAB_TOKEN env var)")
	}
	if c.Jira.URL == "" {
		return fmt.Errorf("JIRA URL is required (set in config file or JIRA_URL env var)")
	}
	if c.Jira.Email == "" {
		return fmt.Errorf("JIRA email is required (set in config file or JIRA_EMAIL env var)")
	}
	if c.Jira.Token == "" {
		return fmt.Errorf("JIRA token is required (set in config file or JIRA_TOKEN env var)")
	}
	return nil
}

// ProjectKeyFor resolves the JIRA project key for a GitLab project path:
// an explicit mapping wins, then the configured default.
func (c Config) ProjectKeyFor(gitlabProjectPath string) string {
	if m, ok := c.Mappings[gitlabProjectPath]; ok && m.JiraProjectKey != "" {
		return m.JiraProjectKey
	}
	return c.Jira.ProjectKey
}

// DefaultIssueType returns the configured issue type, falling back to Task.
func (d Defaults) DefaultIssueType() string {
	if d.IssueType != "" {
		return d.IssueType
	}
	return "Task"
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

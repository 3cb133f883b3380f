package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dt-pm-tools/gitlab2jira/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure GitLab and JIRA connection settings",
	Long:  `Interactively set up GitLab and JIRA URLs, credentials, ticket defaults, and optional per-project mappings. Settings are saved to ~/.gitlab2jira.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		// Load existing config for defaults
		existing, _ := config.Load(cfgFile)

		fmt.Println("--- GitLab ---")
		gitlabURL := prompt(reader, "GitLab URL (e.g., https://gitlab.com)", existing.GitLab.URL)
		gitlabToken, err := promptSecret("GitLab Personal Access Token", existing.GitLab.Token)
		if err != nil {
			return err
		}

		fmt.Println("\n--- JIRA ---")
		jiraURL := prompt(reader, "JIRA URL (e.g., https://your-org.atlassian.net)", existing.Jira.URL)
		jiraEmail := prompt(reader, "JIRA email", existing.Jira.Email)
		jiraToken, err := promptSecret("JIRA API Token", existing.Jira.Token)
		if err != nil {
			return err
		}
		jiraProject := prompt(reader, "Default JIRA project key", existing.Jira.ProjectKey)

		fmt.Println("\n--- Defaults ---")
		issueType := prompt(reader, "Default issue type", existing.Defaults.DefaultIssueType())
		labels := promptList(reader, "Default labels (comma-separated, optional)", existing.Defaults.Labels)
		components := promptList(reader, "Default components (comma-separated, optional)", existing.Defaults.Components)
		priority := prompt(reader, "Default priority (optional)", existing.Defaults.Priority)

		cfg := config.Config{
			GitLab: config.GitLabConfig{URL: gitlabURL, Token: gitlabToken},
			Jira: config.JiraConfig{
				URL:        jiraURL,
				Email:      jiraEmail,
				Token:      jiraToken,
				ProjectKey: jiraProject,
			},
			Defaults: config.Defaults{
				IssueType:  issueType,
				Labels:     labels,
				Components: components,
				Priority:   priority,
			},
			Mappings: existing.Mappings,
		}

		// Project mappings route specific GitLab projects to other JIRA
		// projects than the default.
		fmt.Println("\n--- Project mappings (optional) ---")
		for {
			answer := prompt(reader, "Add a project mapping? (y/n)", "n")
			if !strings.EqualFold(answer, "y") {
				break
			}
			path := prompt(reader, "GitLab project path (e.g., namespace/project)", "")
			key := prompt(reader, fmt.Sprintf("JIRA project key for %q", path), "")
			if path == "" || key == "" {
				continue
			}
			if cfg.Mappings == nil {
				cfg.Mappings = make(map[string]config.Mapping)
			}
			cfg.Mappings[path] = config.Mapping{JiraProjectKey: key}
			fmt.Printf("Added mapping: %s -> %s\n", path, key)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

// prompt reads one line, returning fallback on empty input.
func prompt(reader *bufio.Reader, label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

// promptSecret reads masked input, keeping the existing value on empty
// input.
func promptSecret(label, fallback string) (string, error) {
	if fallback != "" {
		fmt.Printf("%s (input hidden, Enter keeps current): ", label)
	} else {
		fmt.Printf("%s (input hidden): ", label)
	}
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

// promptList reads a comma-separated list, returning fallback on empty
// input.
func promptList(reader *bufio.Reader, label string, fallback []string) []string {
	def := strings.Join(fallback, ", ")
	line := prompt(reader, label, def)
	if line == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(line, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
}

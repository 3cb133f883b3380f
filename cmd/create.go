package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/dt-pm-tools/gitlab2jira/internal/convert"
	"github.com/dt-pm-tools/gitlab2jira/internal/gitlab"
	"github.com/dt-pm-tools/gitlab2jira/internal/jira"
	"github.com/dt-pm-tools/gitlab2jira/internal/ticket"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	createProject    string
	createIssueType  string
	createLabels     []string
	createComponents []string
	createPriority   string
	createImageMode  string
	createInProgress bool
	createTagMR      bool
	createDryRun     bool
)

var createCmd = &cobra.Command{
	Use:   "create <mr-url>",
	Short: "Create a JIRA ticket from a GitLab merge request",
	Long: `Fetches a GitLab merge request, converts its description from markdown to
Atlassian Document Format, and creates a JIRA ticket with the MR title as
the summary. Use --dry-run to preview the ticket without creating it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		imageMode, err := convert.ParseImageMode(createImageMode)
		if err != nil {
			return fmt.Errorf("--image-mode: %w", err)
		}

		ref, err := gitlab.ParseMRURL(args[0])
		if err != nil {
			return err
		}

		gl := gitlab.NewClient(appConfig.GitLab.URL, appConfig.GitLab.Token)
		jc := jira.NewClient(appConfig.Jira.URL, appConfig.Jira.Email, appConfig.Jira.Token)

		fmt.Fprintf(os.Stderr, "Fetching merge request %s!%s...\n", ref.ProjectPath, ref.IID)
		mr, err := gl.GetMergeRequest(ref.ProjectID, ref.IID)
		if err != nil {
			return fmt.Errorf("fetching merge request: %w", err)
		}
		if mr.Title == "" {
			return fmt.Errorf("merge request has no title; cannot create a ticket")
		}

		project, err := gl.GetProject(ref.ProjectID)
		if err != nil {
			return fmt.Errorf("fetching project details: %w", err)
		}

		projectKey := createProject
		if projectKey == "" {
			projectKey = appConfig.ProjectKeyFor(ref.ProjectPath)
		}
		if projectKey == "" {
			return fmt.Errorf("no JIRA project key: use --project, configure a project mapping, or set a default")
		}

		// Relative upload references need the numeric project id to become
		// absolute URLs before conversion.
		description := gitlab.RewriteUploadURLs(mr.Description, appConfig.GitLab.URL, project.ID)

		body, warnings, err := convert.Convert(description, convert.Config{ImageMode: imageMode})
		if err != nil {
			return fmt.Errorf("converting description: %w", err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Message)
		}

		doc := ticket.BuildDescription(args[0], mr, body)

		issueType := createIssueType
		if issueType == "" {
			issueType = appConfig.Defaults.DefaultIssueType()
		}
		priority := createPriority
		if priority == "" {
			priority = appConfig.Defaults.Priority
		}

		labels := append([]string{}, appConfig.Defaults.Labels...)
		labels = append(labels, createLabels...)

		components, err := resolveComponents(jc, projectKey)
		if err != nil {
			return err
		}

		payload := jira.CreatePayload{
			Fields: jira.CreateFields{
				Project:     jira.ProjectRef{Key: projectKey},
				Summary:     mr.Title,
				Description: doc,
				IssueType:   jira.IssueType{Name: issueType},
				Labels:      labels,
			},
		}
		for _, c := range components {
			payload.Fields.Components = append(payload.Fields.Components, jira.ComponentRef{Name: c})
		}
		if priority != "" {
			payload.Fields.Priority = &jira.Priority{Name: priority}
		}

		if createDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: would create the following ticket in %s\n\n", projectKey)
			fmt.Fprintf(os.Stderr, "Summary: %s\nType: %s\n", mr.Title, issueType)
			if len(labels) > 0 {
				fmt.Fprintf(os.Stderr, "Labels: %s\n", strings.Join(labels, ", "))
			}
			if len(components) > 0 {
				fmt.Fprintf(os.Stderr, "Components: %s\n", strings.Join(components, ", "))
			}
			if priority != "" {
				fmt.Fprintf(os.Stderr, "Priority: %s\n", priority)
			}
			fmt.Fprintf(os.Stderr, "\nDescription preview:\n\n%s\n", convert.Render(doc))
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(payload); err != nil {
				return fmt.Errorf("encoding payload: %w", err)
			}
			return nil
		}

		fmt.Fprintf(os.Stderr, "Creating JIRA ticket in project %s...\n", projectKey)
		created, err := jc.CreateIssue(payload)
		if err != nil {
			return fmt.Errorf("creating ticket: %w", err)
		}

		fmt.Printf("Created %s\n%s/browse/%s\n", created.Key, jc.BaseURL(), created.Key)

		if createInProgress {
			if err := jc.TransitionByName(created.Key, "In Progress"); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not set %s to In Progress: %v\n", created.Key, err)
			} else {
				fmt.Fprintf(os.Stderr, "Set %s to In Progress\n", created.Key)
			}
		}

		if createTagMR {
			if strings.HasPrefix(mr.Title, "[") && strings.Contains(mr.Title, "]") {
				fmt.Fprintf(os.Stderr, "MR title already carries a ticket key, skipping update\n")
			} else {
				newTitle := fmt.Sprintf("[%s] %s", created.Key, mr.Title)
				if err := gl.UpdateMergeRequestTitle(ref.ProjectID, ref.IID, newTitle); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not update MR title: %v\n", err)
				} else {
					fmt.Fprintf(os.Stderr, "Updated MR title to: %s\n", newTitle)
				}
			}
		}

		return nil
	},
}

// resolveComponents merges configured defaults with --components, validating
// them against the project. When nothing is specified and the command runs
// on a terminal, the user picks components interactively.
func resolveComponents(jc *jira.Client, projectKey string) ([]string, error) {
	defaults := appConfig.Defaults.Components

	if len(createComponents) == 0 {
		if term.IsTerminal(int(syscall.Stdin)) && !createDryRun {
			return pickComponents(jc, projectKey, defaults)
		}
		return defaults, nil
	}

	available, err := jc.GetProjectComponents(projectKey)
	if err != nil {
		return nil, fmt.Errorf("fetching components for %s: %w", projectKey, err)
	}

	// Case-insensitive lookup so users don't have to match JIRA's casing.
	byName := make(map[string]string, len(available))
	for _, c := range available {
		byName[strings.ToLower(c.Name)] = c.Name
	}

	components := append([]string{}, defaults...)
	var invalid []string
	for _, c := range createComponents {
		if name, ok := byName[strings.ToLower(c)]; ok {
			components = append(components, name)
		} else {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) > 0 {
		names := make([]string, 0, len(available))
		for _, c := range available {
			names = append(names, c.Name)
		}
		return nil, fmt.Errorf("unknown components for %s: %s (available: %s)",
			projectKey, strings.Join(invalid, ", "), strings.Join(names, ", "))
	}

	return components, nil
}

// pickComponents shows the project's components and reads a space-separated
// selection of numbers. Empty input keeps the defaults; "none" selects
// nothing.
func pickComponents(jc *jira.Client, projectKey string, defaults []string) ([]string, error) {
	available, err := jc.GetProjectComponents(projectKey)
	if err != nil {
		return nil, fmt.Errorf("fetching components for %s: %w", projectKey, err)
	}
	if len(available) == 0 {
		return nil, nil
	}

	fmt.Fprintf(os.Stderr, "Components in %s:\n", projectKey)
	for i, c := range available {
		fmt.Fprintf(os.Stderr, "  %2d. %s\n", i+1, c.Name)
	}
	if len(defaults) > 0 {
		fmt.Fprintf(os.Stderr, "Defaults from config: %s\n", strings.Join(defaults, ", "))
	}
	fmt.Fprint(os.Stderr, "Select by number (space-separated), Enter for defaults, 'none' for none: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	switch input {
	case "":
		return defaults, nil
	case "none":
		return nil, nil
	}

	var selected []string
	for _, field := range strings.Fields(input) {
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 1 || idx > len(available) {
			return nil, fmt.Errorf("invalid component selection %q", field)
		}
		selected = append(selected, available[idx-1].Name)
	}
	return selected, nil
}

func init() {
	createCmd.Flags().StringVar(&createProject, "project", "", "JIRA project key (overrides config and mappings)")
	createCmd.Flags().StringVar(&createIssueType, "issue-type", "", "JIRA issue type (default: from config or Task)")
	createCmd.Flags().StringSliceVar(&createLabels, "labels", nil, "labels to add (repeatable or comma-separated)")
	createCmd.Flags().StringSliceVar(&createComponents, "components", nil, "components to add (skips interactive selection)")
	createCmd.Flags().StringVar(&createPriority, "priority", "", "priority (e.g. High, Medium, Low)")
	createCmd.Flags().StringVar(&createImageMode, "image-mode", string(convert.ImageLinks), "how to handle images: links, native-syntax, or strip")
	createCmd.Flags().BoolVar(&createInProgress, "set-in-progress", false, "transition the ticket to 'In Progress' after creation")
	createCmd.Flags().BoolVar(&createTagMR, "update-mr-title", false, "prefix the MR title with the ticket key")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "preview the ticket payload without creating it")
	rootCmd.AddCommand(createCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-Slippery/jirascope/internal/config"
	"github.com/Mr-Slippery/jirascope/internal/jira"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the credential source and the authenticated Jira user",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cm := config.NewCredentialManager()

	source := cm.Peek()
	if source == config.SourceNone {
		fmt.Println("Not authenticated")
		fmt.Println("Run 'jirascope login' to store a credential")
		return nil
	}
	fmt.Printf("Credential source: %s\n", source)

	if err := requireConnection(); err != nil {
		return err
	}

	password, _, err := cm.Resolve(cfg.Jira.Username)
	if err != nil {
		return err
	}
	client, err := jira.NewClient(cfg.Jira.Server, cfg.Jira.Username, password, cfg.Jira.RateLimit, "")
	if err != nil {
		return err
	}
	name, err := client.Self(cmd.Context())
	if err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}

	fmt.Printf("Server:            %s\n", cfg.Jira.Server)
	fmt.Printf("Authenticated as:  %s\n", name)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-Slippery/jirascope/internal/config"
	"github.com/Mr-Slippery/jirascope/internal/jira"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify the Jira credential and store it in the OS keychain",
	Long: `Prompt for the Jira password or API token without echoing, verify it
against the server, and store it in the OS keychain so later runs do not
prompt again.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := requireConnection(); err != nil {
		return err
	}

	cm := config.NewCredentialManager()
	password, err := cm.Prompt(fmt.Sprintf("Jira password or API token for %s: ", cfg.Jira.Username))
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("empty credential")
	}

	client, err := jira.NewClient(cfg.Jira.Server, cfg.Jira.Username, password, cfg.Jira.RateLimit, "")
	if err != nil {
		return err
	}
	name, err := client.Self(cmd.Context())
	if err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	fmt.Printf("Authenticated as %s\n", name)

	if !cm.Keyring().IsAvailable() {
		return fmt.Errorf("OS keychain not available; set %s instead", config.EnvPassword)
	}
	if err := cm.Keyring().SavePassword(password); err != nil {
		return err
	}
	fmt.Println("Credential saved to OS keychain")
	return nil
}

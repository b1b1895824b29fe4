package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-Slippery/jirascope/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored Jira credential from the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.NewKeyringManager().DeletePassword(); err != nil {
			return err
		}
		fmt.Println("Credential removed from OS keychain")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

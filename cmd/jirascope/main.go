package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mr-Slippery/jirascope/internal/config"
)

var (
	// Version information (set by build flags)
	Version = "dev"

	cfgFile string
	verbose bool
	server  string
	user    string

	logger *logrus.Logger
	cfg    *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jirascope",
	Short: "Map which issues of a component block other components",
	Long: `jirascope queries a Jira project and renders the issues of one
component that block High/Highest priority or Major severity issues of
other components, as a Graphviz digraph on stdout:

  jirascope graph PROJECT "My Component" | neato -Tpdf -o blockers.pdf`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}

		// Flags win over config and environment
		if server != "" {
			cfg.Jira.Server = server
		}
		if user != "" {
			cfg.Jira.Username = user
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.jirascope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "Jira server base URL")
	rootCmd.PersistentFlags().StringVarP(&user, "user", "u", "", "Jira username")
}

// requireConnection checks the settings every tracker-facing command needs.
func requireConnection() error {
	if cfg.Jira.Server == "" {
		return fmt.Errorf("jira server required (--server, JIRASCOPE_SERVER or config file)")
	}
	if cfg.Jira.Username == "" {
		return fmt.Errorf("jira username required (--user, JIRASCOPE_USER or config file)")
	}
	return nil
}

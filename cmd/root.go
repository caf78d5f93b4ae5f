package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/neochat/neochat/internal/app"
	"github.com/neochat/neochat/internal/config"
	"github.com/neochat/neochat/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	clearLogs             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "neochat",
	Short: "Terminal messenger with simulated contacts and an AI assistant",
	Long: `NeoChat is a terminal messaging app. Conversations live in a sidebar,
contacts reply on their own (the AI assistant through Gemini, everyone
else from scripted personas), and voice messages, image attachments,
and calls are simulated end to end.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().BoolVar(&clearLogs, "clear", false, "Remove log files and exit")
}

func initConfig() {
	// GEMINI_API_KEY may live in a local .env; absence is fine
	_ = godotenv.Load()

	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("neochat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("neochat %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if clearLogs {
		cleared, err := logger.ClearLogs()
		if err != nil {
			return fmt.Errorf("error clearing logs: %w", err)
		}
		fmt.Printf("Removed %d log file(s).\n", cleared)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	defer logger.Close()

	m := app.New(cfg, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photokit/datemark/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Manage configuration files for the datemark tool.`,
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate [filename]",
	Short: "Generate example configuration file",
	Long: `Generate an example configuration file with default values.

Example:
  datemark config generate config.yaml
  datemark config generate  # generates to default location`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerateConfig,
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runShowConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(generateConfigCmd)
	configCmd.AddCommand(showConfigCmd)
}

func runGenerateConfig(cmd *cobra.Command, args []string) error {
	var filename string
	if len(args) > 0 {
		filename = args[0]
	} else {
		filename = config.GetDefaultConfigPath()
	}

	logger.WithField("file", filename).Info("Generating configuration file")

	if err := config.GenerateExampleConfig(filename); err != nil {
		return fmt.Errorf("generating config file: %w", err)
	}

	logger.Infof("Configuration file generated: %s", filename)
	return nil
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	appConfig := configMgr.GetAppConfig()

	fmt.Printf("Current Configuration:\n")
	fmt.Printf("  Font Size:   %d\n", appConfig.FontSize)
	fmt.Printf("  Color:       %s\n", appConfig.Color)
	fmt.Printf("  Position:    %s\n", appConfig.Position)
	fmt.Printf("  Quality:     %d\n", appConfig.Quality)
	fmt.Printf("  Log Level:   %s\n", appConfig.LogLevel)

	fmt.Printf("\nCandidate Font Files:\n")
	for _, path := range appConfig.SystemFontPaths {
		fmt.Printf("  - %s\n", path)
	}

	return nil
}

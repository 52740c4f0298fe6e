package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/photokit/datemark/internal/config"
	"github.com/photokit/datemark/pkg/watermark"
)

var (
	cfgFile   string
	configMgr *config.Manager
	logger    *logrus.Logger
	rootCmd   = &cobra.Command{
		Use:   "datemark [image-path]",
		Short: "Stamp photos with their capture date",
		Long: `Datemark adds a date watermark to a photo or a directory of photos.
The date comes from the image's EXIF capture timestamp when present and
falls back to the current date. Watermarked copies are written to a
sibling <directory>_watermark folder; the originals are never modified.`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initializeLogger,
		RunE:             runRoot,
	}
)

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/datemark/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	rootCmd.Flags().Int("font-size", 36, "watermark font size")
	rootCmd.Flags().String("color", "white", "watermark color (name or #RRGGBB)")
	rootCmd.Flags().String("position", "bottom-right", "watermark position (top-left, top-center, top-right, center, bottom-left, bottom-center, bottom-right)")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("font_size", rootCmd.Flags().Lookup("font-size"))
	viper.BindPFlag("color", rootCmd.Flags().Lookup("color"))
	viper.BindPFlag("position", rootCmd.Flags().Lookup("position"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	configMgr = config.NewManager()

	if err := configMgr.LoadConfig(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// initializeLogger sets up the logger from the log-level and verbose flags
func initializeLogger(cmd *cobra.Command, args []string) {
	logger = logrus.New()

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if viper.GetBool("verbose") {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			DisableColors:    false,
		})
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Carry only flags the user actually set, so config file values survive
	overrides := make(map[string]interface{})
	if cmd.Flags().Changed("font-size") {
		overrides["font_size"] = viper.GetInt("font_size")
	}
	if cmd.Flags().Changed("color") {
		overrides["color"] = viper.GetString("color")
	}
	if cmd.Flags().Changed("position") {
		overrides["position"] = viper.GetString("position")
	}

	spec, err := configMgr.CreateSpec(overrides)
	if err != nil {
		return err
	}

	fontMgr := watermark.NewFontManager(logger)
	if paths := configMgr.FontPaths(); len(paths) > 0 {
		fontMgr.SetCandidatePaths(paths)
	}
	face := fontMgr.LoadFace(spec.FontSize)

	renderer := watermark.NewRenderer(spec, face, logger)
	driver := watermark.NewDriver(renderer, logger)

	result, err := driver.Run(inputPath)
	if err != nil {
		return err
	}

	// Per-image failures do not change the exit status
	if len(result.Failures) > 0 {
		logger.Warnf("Completed with %d failures out of %d files", len(result.Failures), result.Total)
	}

	return nil
}

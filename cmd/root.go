package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/filekit/dupfind/pkg/config"
	"github.com/filekit/dupfind/pkg/logger"
)

var (
	// Global flags
	flagLogLevel     = 0
	flagConfigFile   = "config.yaml"
	flagConfigFolder = config.GetDefaultConfigDirectory("dupfind", "config.yaml")
	flagLogFile      = "activity.log"

	// Global vars
	log         *logrus.Entry
	initialized bool
)

var rootCmd = &cobra.Command{
	Use:   "dupfind",
	Short: "A CLI duplicate file finder",
	Long: `A CLI application that finds files with identical content and lists,
hard-links or interactively deletes them.
`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Parse persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigFolder, "config-dir", flagConfigFolder, "Config folder")
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", flagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", flagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagLogLevel, "verbose", "v", "Verbose level")
}

func initCore(showUsing bool) {
	logFilePath := ""
	if flagLogFile != "" {
		logFilePath = filepath.Join(flagConfigFolder, flagLogFile)
	}

	if err := logger.Init(flagLogLevel, logFilePath); err != nil {
		fmt.Printf("Failed initializing logger: %v\n", err)
		os.Exit(1)
	}

	log = logger.GetLogger("dupfind")
	if showUsing {
		logger.ShowUsing()
	}

	if err := config.Init(filepath.Join(flagConfigFolder, flagConfigFile)); err != nil {
		log.WithError(err).Fatal("Failed initializing config")
	}
}

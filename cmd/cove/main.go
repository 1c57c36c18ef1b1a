package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coveshell/cove/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cove",
	Short: "Cove is a context-sensitive shell completion engine",
	Long: `Cove completes command lines the way a shell would: it knows whether
the cursor sits on a command name or an argument, expands substitutions
through a real shell interpreter, and cycles or lists candidates depending
on how many there are.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "cove: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cove/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output to the log file")
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(BUILD_VERSION)
	},
}

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset. A missing default file is not an error.
func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return config.Default(), nil
	}
	path := filepath.Join(home, ".config", "cove", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

// initLogger builds a file logger so log output never interferes with the
// prompt. Use `tail -f ~/.cove/cove.log` to monitor it.
func initLogger() (*zap.Logger, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return zap.NewNop(), nil
	}
	dir := filepath.Join(home, ".cove")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop(), nil
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.OutputPaths = []string{filepath.Join(dir, "cove.log")}
	if verbose || BUILD_VERSION == "dev" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return loggerConfig.Build()
}

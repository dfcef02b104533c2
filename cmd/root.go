// Package cmd is for command line interactions with the crispulator application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// settingsFile is an optional YAML file of simulation settings
var settingsFile string

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "crispulator",
	Short: `Simulate pooled CRISPR screens against known ground truth.
Evaluate library design, MOI, bottleneck size and sequencing depth before running the real experiment`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	RootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "path to a YAML settings file")
}

// initSettings reads the settings file into Viper, if one was passed
func initSettings() {
	if settingsFile == "" {
		return
	}

	viper.SetConfigFile(settingsFile)
	if err := viper.ReadInConfig(); err != nil {
		stderr.Fatalf("failed to read settings file %s: %v", settingsFile, err)
	}
}

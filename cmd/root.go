// Package cmd provides the hydro command-line interface.
//
// Configuration sources, in order of increasing precedence:
//  1. .hydro.yml in the current directory (or the file named by --config
//     or the HYDRO_CONFIG_FILE environment variable)
//  2. Environment variables with the HYDRO_ prefix, following the
//     HYDRO_<SECTION>_<OPTION> pattern (HYDRO_SERVER_PORT, HYDRO_LOG_LEVEL)
//  3. Command-line flags
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hydro",
	Short: "Streaming HTML template renderer and component preview server",
	Long: `Hydro renders marker-annotated HTML templates as a stream of chunks,
expanding registered components and distributing slotted content on the
server so a client-side pass can hydrate the markup without re-rendering.

Quick start:
  hydro serve          Start the component preview server
  hydro config init    Write a default .hydro.yml
  hydro version        Show version information`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .hydro.yml, can also use HYDRO_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("HYDRO_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hydro")
	}

	viper.SetEnvPrefix("HYDRO")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine; defaults and env vars apply
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

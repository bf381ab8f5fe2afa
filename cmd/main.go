package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"kselect/config"
	"kselect/log"
	"kselect/net"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:          "kselect",
	Short:        "Select the k largest elements with quickselect or a bounded heap, and benchmark both",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kselect version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "kselect "+Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Configuration file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
}

// setup loads the configuration and initializes logging and the webhook client.
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log.Init(&cfg.Log)
	net.Init(&cfg.Net)

	return cfg, nil
}

func main() {
	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

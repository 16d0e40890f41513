package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"nitscrape/internal/config"
)

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the nitscrape configuration file.",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file if none exists.",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.ConfigPath()
		if err != nil {
			log.Fatalf("could not resolve config path: %v", err)
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Config already exists at %s\n", path)
			return
		}

		if err := config.Default().Save(); err != nil {
			log.Fatalf("failed to write config: %v", err)
		}
		fmt.Printf("Wrote default config to %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration.",
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()
		if err := toml.NewEncoder(os.Stdout).Encode(a.Config()); err != nil {
			log.Fatalf("failed to encode config: %v", err)
		}
	},
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterdrop/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration as YAML, after applying the search order:
--config, ~/.waterdrop/configs/waterdrop.yaml, ./configs/waterdrop.yaml,
built-in defaults.

Examples:
  waterdrop config
  waterdrop config --defaults > ~/.waterdrop/configs/waterdrop.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	data, err := config.Marshal(loadConfig())
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(string(data))
}

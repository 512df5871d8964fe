// Entry point for sidecap, a sidecar caption editor for image
// datasets. Each image gets a .txt file with the same name holding its
// caption; sidecap navigates the folder, edits captions with live
// spelling feedback, and searches them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sidecap/internal/config"
	"sidecap/internal/log"
)

var (
	version = "dev"

	cfgFile string
	debug   bool
	cfg     *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sidecap",
		Short:   "Caption images with sidecar text files",
		Long:    "Sidecap edits free-text captions for a folder of images,\nstored next to each image as a .txt sidecar file.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return err
			}
			if debug {
				cfg.Settings.Debug = true
			}
			log.SetDebug(cfg.Settings.Debug)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/sidecap/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(findCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

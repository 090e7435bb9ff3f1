package main

import (
	"fmt"
	"os"

	"taskManager/internal/app"
	"taskManager/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "taskmanager",
		Short:        "File-backed task tracker with per-user assignments and overdue statistics",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			application := app.New(cfg)
			if err := application.Init(cmd.Context()); err != nil {
				return err
			}
			defer application.Shutdown()

			return application.Run(cmd.Context())
		},
	}

	root.Flags().StringVar(&configPath, "config", "config.yml", "path to the yaml config file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

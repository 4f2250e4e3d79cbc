// Package main boots the quest service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:   "questlog",
		Short: "Quest tracking REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := InitializeApp(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()

			return app.Run()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "conf", "c", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

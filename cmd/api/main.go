package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/cmd/api/commands"
)

// @title Personal Planner API
// @version 1.0
// @description Six-month goals, monthly checklists and daily checkboxes backed by a single JSON document

// @host localhost:3000
// @BasePath /api

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Personal Planner API Server",
		Long:  `Personal Planner keeps six-month goals, monthly checklists and daily checkboxes in one JSON document and serves them over HTTP.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

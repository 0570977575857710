package main

import (
	"fmt"
	"os"

	"github.com/moviehub/movies-api/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "movies-configure",
		Short: "Configuration tool for the Movies API",
		Long:  "CLI tool for managing CORS and rate limit settings stored in the database",
	}

	rootCmd.AddCommand(commands.NewCorsCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-calc-tools",
	Short: "An MCP server for calculus tools",
	Long:  `An MCP server exposing numerical integration, stochastic integration and option pricing tools.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

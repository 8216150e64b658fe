package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/nbiish/mcp-calc-tools/internal/calctools"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Runs the calc tools MCP server on stdin/stdout",
	RunE:  runStdio,
}

var stdioName string

func init() {
	rootCmd.AddCommand(stdioCmd)
	stdioCmd.Flags().StringVarP(&stdioName, "name", "n", "mcp-calc-tools", "The name of the server")
}

func runStdio(cmd *cobra.Command, args []string) error {
	return server.ServeStdio(calctools.NewMCPServer(stdioName))
}

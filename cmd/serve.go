package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nbiish/mcp-calc-tools/internal/calctools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the calc tools MCP server over streamable HTTP",
	Run:   runServe,
}

var serveName string
var servePort int
var servePath string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveName, "name", "n", "mcp-calc-tools", "The name of the server")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8888, "The port to listen on")
	serveCmd.Flags().StringVar(&servePath, "path", "/mcp", "The URI path for the MCP endpoint")
}

func runServe(cmd *cobra.Command, args []string) {
	handler := calctools.RunCalcServer(serveName, servePath)

	addr := fmt.Sprintf(":%d", servePort)
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Calc tools MCP server '%s' listening on %s%s", serveName, addr, servePath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("could not listen on %s: %v\n", addr, err)
		}
	}()

	// Wait for the command context to be cancelled or a shutdown signal
	signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-signalCtx.Done()
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown timeout exceeded and it was forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/adapters/sqlite"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/project"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the condition API server",
	Long:  `Exposes stored condition documents and the edit pipeline as a JSON API over HTTP, for browser-based frontends.`,
	Run: func(cmd *cobra.Command, args []string) {
		projectPath, _ := cmd.Flags().GetString("project")
		port, _ := cmd.Flags().GetString("port")
		backend, _ := cmd.Flags().GetString("store")
		dbPath, _ := cmd.Flags().GetString("db")
		redisURL, _ := cmd.Flags().GetString("redis-addr")

		doc, err := project.Load(projectPath)
		if err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			os.Exit(1)
		}

		var store ports.DocumentStore
		switch backend {
		case "memory":
			store = memory.NewStore()
		case "sqlite":
			s, err := sqlite.Open(dbPath)
			if err != nil {
				fmt.Printf("Error opening sqlite store: %v\n", err)
				os.Exit(1)
			}
			defer s.Close()
			store = s
		case "redis":
			store = redisAdapter.New(redisURL, "", 0)
		default:
			fmt.Printf("Unknown store backend: %q (use memory, sqlite or redis)\n", backend)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(store,
			httpAdapter.WithDefinitions(doc.Variables, doc.ConditionScripts()),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Espalier Server on %s\n", srv.Addr)
			fmt.Printf("Definitions from: %s\n", projectPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Espalier Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Document store backend: memory, sqlite or redis")
	serveCmd.Flags().String("db", "espalier.db", "SQLite database path (store=sqlite)")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address (store=redis)")
}

// glowmart is the storefront API server.
//
//	glowmart serve   start the HTTP server (default)
//	glowmart seed    load the demo catalog and exit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/glowmart/app/repositories"
	"github.com/shashiranjanraj/glowmart/app/routes"
	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/config"
	"github.com/shashiranjanraj/glowmart/database/seeders"
	"github.com/shashiranjanraj/glowmart/internal/server"
	"github.com/shashiranjanraj/glowmart/pkg/auth"
	"github.com/shashiranjanraj/glowmart/pkg/cache"
	"github.com/shashiranjanraj/glowmart/pkg/database"
	"github.com/shashiranjanraj/glowmart/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glowmart",
	Short: "glowmart — storefront API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer database.Disconnect(db)

	var sinks []slog.Handler
	if cfg.LogMongoCollection != "" {
		sink := logger.NewMongoSink(db.Collection(cfg.LogMongoCollection))
		defer sink.Close()
		sinks = append(sinks, sink)
	}
	logger.Setup(cfg.IsProduction(), sinks...)

	store := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	defer store.Close()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpires)

	productSvc := services.NewProductService(repositories.NewProductRepository(db), store)
	orderSvc := services.NewOrderService(repositories.NewOrderRepository(db))
	authSvc := services.NewAuthService(cfg.AdminUser, cfg.AdminPass, tokens)

	handler := routes.New(routes.Deps{
		Products:    productSvc,
		Orders:      orderSvc,
		Auth:        authSvc,
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		RateWindow:  cfg.RateWindow,
	})

	return server.Run(cfg.Port, handler)
}

func runSeed() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer database.Disconnect(db)

	if err := seeders.Products(ctx, db); err != nil {
		return err
	}

	logger.L.Info("seeded demo catalog")
	return nil
}

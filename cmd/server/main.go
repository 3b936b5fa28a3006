package main

import (
	"fmt"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/campbridge/freedcamp-mcp/internal/config"
	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
	"github.com/campbridge/freedcamp-mcp/internal/server"
)

func main() {
	// Best effort; configuration may come straight from the environment.
	_ = godotenv.Load()

	// stdout belongs to the MCP protocol in stdio mode; logs go to stderr.
	logger, err := newLogger()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	cfg, warning, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if warning != "" {
		logger.Warn(warning)
	}

	client := freedcamp.NewClient(cfg.BaseURL, cfg.APIKey, cfg.APISecret, cfg.HTTPTimeout, logger)
	s := server.New(client, logger)

	switch cfg.Transport {
	case config.TransportHTTP:
		if err := server.RunHTTP(s, cfg.HTTPPort, logger); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	default:
		logger.Info("serving MCP over stdio")
		if err := mcpserver.ServeStdio(s); err != nil {
			logger.Fatal("stdio server failed", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

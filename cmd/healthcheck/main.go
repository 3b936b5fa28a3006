// Command healthcheck is the Docker health probe: it performs one
// lightweight API call and exits 0 on success, 1 on any failure.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/campbridge/freedcamp-mcp/internal/config"
	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

const probeTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, _, err := config.Load()
	if err != nil {
		fmt.Println("ERROR: missing API credentials")
		os.Exit(1)
	}

	client := freedcamp.NewClient(cfg.BaseURL, cfg.APIKey, cfg.APISecret, probeTimeout, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	users, err := client.ListUsers(ctx)
	if err != nil {
		fmt.Printf("ERROR: health check failed - %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: connected to Freedcamp API, found %d users\n", len(users))
}

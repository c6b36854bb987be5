// Command admintoken prints a bearer token for POST /api/projects, signed with
// AUTH_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/kinsman/brandsite/backend/go-services/internal/auth"
	"github.com/kinsman/brandsite/backend/go-services/internal/config"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
)

func main() {
	sub := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("AUTH_JWT_SECRET is not set")
	}
	tok, err := auth.Sign(cfg.Auth.JWTSecret, *sub, *ttl)
	if err != nil {
		logger.Fatalf("sign: %v", err)
	}
	fmt.Println(tok)
}

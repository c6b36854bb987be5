// Command seed loads portfolio projects from a YAML file into the document store.
//
//	seed -file projects.yaml [-dry-run] [-upload-schema]
//
// The file holds a list of project mappings using the API field names. Each entry is
// validated like a POST /api/projects body; invalid entries are reported and skipped.
// With -upload-schema the local schema source is also copied to the configured MinIO
// object so GET /schema can serve it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kinsman/brandsite/backend/go-services/internal/config"
	"github.com/kinsman/brandsite/backend/go-services/internal/database"
	"github.com/kinsman/brandsite/backend/go-services/internal/projects"
	"github.com/kinsman/brandsite/backend/go-services/internal/schema"
	"github.com/kinsman/brandsite/backend/go-services/internal/schemasource"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
	"gopkg.in/yaml.v3"
)

func main() {
	file := flag.String("file", "projects.yaml", "YAML file with a list of projects")
	dryRun := flag.Bool("dry-run", false, "validate only, do not write")
	uploadSchema := flag.Bool("upload-schema", false, "copy the schema source file to the MinIO schema object")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"), "console")
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalf("open %s: %v", *file, err)
	}
	entries, err := parseProjects(f)
	f.Close()
	if err != nil {
		logger.Fatalf("parse %s: %v", *file, err)
	}

	var svc *projects.Service
	if !*dryRun {
		if cfg.Database.URL == "" {
			logger.Fatalf("DATABASE_URL is required unless -dry-run is set")
		}
		client, db, err := database.Open(ctx, cfg.Database.URL, cfg.Database.Name, cfg.Database.Timeout)
		if err != nil {
			logger.Fatalf("connect: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		svc = projects.NewService(store.NewMongo(db))
	}

	stored, failed := seed(ctx, svc, entries)
	logger.Infof("seed finished: %d entries, %d stored, %d failed", len(entries), stored, failed)

	if *uploadSchema && !*dryRun {
		if err := upload(ctx, cfg); err != nil {
			logger.Errorf("schema upload failed: %v", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func parseProjects(r io.Reader) ([]map[string]any, error) {
	var entries []map[string]any
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

// seed validates every entry and inserts the valid ones when svc is non-nil.
func seed(ctx context.Context, svc *projects.Service, entries []map[string]any) (stored, failed int) {
	for i, raw := range entries {
		p, err := schema.Decode[*schema.Project](raw)
		if err != nil {
			logger.Errorf("entry %d: %v", i+1, err)
			failed++
			continue
		}
		if svc == nil {
			logger.Infof("entry %d: %q is valid", i+1, p.Title)
			continue
		}
		id, err := svc.Insert(ctx, p)
		if err != nil {
			logger.Errorf("entry %d: %v", i+1, err)
			failed++
			continue
		}
		logger.Infof("entry %d: stored %q as %s", i+1, p.Title, id)
		stored++
	}
	return stored, failed
}

func upload(ctx context.Context, cfg *config.Config) error {
	content, err := os.ReadFile(cfg.Schema.Path)
	if err != nil {
		return err
	}
	m, err := schemasource.NewMinIO(cfg.MinIO, cfg.Schema.Object)
	if err != nil {
		return err
	}
	if err := m.Upload(ctx, content); err != nil {
		return fmt.Errorf("upload %s: %w", cfg.Schema.Object, err)
	}
	logger.Infof("uploaded %s to %s/%s", cfg.Schema.Path, cfg.MinIO.Bucket, cfg.Schema.Object)
	return nil
}

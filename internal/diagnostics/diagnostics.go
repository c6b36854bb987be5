// Package diagnostics builds the connectivity snapshot served on GET /test.
package diagnostics

import (
	"context"
	"fmt"

	"github.com/kinsman/brandsite/backend/go-services/internal/store"
)

const (
	maxCollections = 10
	maxErrorLen    = 50
)

// Report is the diagnostics body. Every field is always present.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Env reports which store settings were provided.
type Env struct {
	URLSet  bool
	NameSet bool
}

// Snapshot probes s and describes the outcome. It never fails: probe errors and
// panics are rendered into Report.Database.
func Snapshot(ctx context.Context, s store.Store, env Env) (r Report) {
	r = Report{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	defer func() {
		r.DatabaseURL = setOrNot(env.URLSet)
		r.DatabaseName = setOrNot(env.NameSet)
	}()
	defer func() {
		if p := recover(); p != nil {
			r.Database = "❌ Error: " + truncate(fmt.Sprint(p), maxErrorLen)
		}
	}()

	if s == nil {
		r.Database = "⚠️  Available but not initialized"
		return r
	}
	r.Database = "✅ Available"
	r.ConnectionStatus = "Connected"

	names, err := s.ListCollections(ctx)
	if err != nil {
		r.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorLen)
		return r
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	if names != nil {
		r.Collections = names
	}
	r.Database = "✅ Connected & Working"
	return r
}

func setOrNot(ok bool) string {
	if ok {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}

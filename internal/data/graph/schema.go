package graph

import (
	"context"

	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

var schemaStatements = []string{
	`CREATE CONSTRAINT team_name_unique IF NOT EXISTS FOR (t:Team) REQUIRE t.name IS UNIQUE`,
	`CREATE CONSTRAINT technology_name_unique IF NOT EXISTS FOR (x:Technology) REQUIRE x.name IS UNIQUE`,
	`CREATE CONSTRAINT policy_name_unique IF NOT EXISTS FOR (p:Policy) REQUIRE p.name IS UNIQUE`,
	`CREATE CONSTRAINT system_name_unique IF NOT EXISTS FOR (s:System) REQUIRE s.name IS UNIQUE`,
	`CREATE INDEX version_key_idx IF NOT EXISTS FOR (v:Version) ON (v.technology, v.version)`,
	`CREATE INDEX policy_status_idx IF NOT EXISTS FOR (p:Policy) ON (p.status)`,
}

// InitSchema creates the catalog constraints and indexes. Best-effort: a
// restricted user may not hold schema privileges, so failures are logged and
// skipped rather than aborting startup.
func InitSchema(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) {
	if client == nil || client.Driver == nil {
		return
	}
	session := writeSession(ctx, client)
	defer session.Close(ctx)

	for _, stmt := range schemaStatements {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			if log != nil {
				log.Warn("graph schema init failed (continuing)", "error", err)
			}
			continue
		}
		_, _ = res.Consume(ctx)
	}
}

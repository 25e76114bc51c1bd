package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

type usageRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewUsageRepo(client *neo4jdb.Client, log *logger.Logger) UsageRepo {
	return &usageRepo{client: client, log: log.With("repo", "UsageRepo")}
}

const usageEdgeQuery = `
MATCH (t:Team)-[u:USES]->(x:Technology)
WHERE ($team = '' OR t.name = $team)
  AND ($technology = '' OR x.name = $technology)
OPTIONAL MATCH (t)-[a:APPROVES]->(x)
RETURN t.name AS team, x.name AS technology, x.category AS category,
       x.risk_level AS risk_level,
       u.system_count AS system_count, u.first_used AS first_used,
       u.last_verified AS last_verified,
       a IS NOT NULL AS has_approval, a.time AS approval_time
ORDER BY t.name, x.name`

func usageEdgeFromRecord(rec *neo4j.Record) domain.UsageEdge {
	return domain.UsageEdge{
		Team:         recString(rec, "team"),
		Technology:   recString(rec, "technology"),
		Category:     recString(rec, "category"),
		RiskLevel:    recString(rec, "risk_level"),
		SystemCount:  recInt(rec, "system_count"),
		FirstUsed:    recString(rec, "first_used"),
		LastVerified: recString(rec, "last_verified"),
		HasApproval:  recBool(rec, "has_approval"),
		ApprovalTime: domain.Disposition(recString(rec, "approval_time")),
	}
}

func (r *usageRepo) EdgesForTeam(ctx context.Context, team string) ([]domain.UsageEdge, error) {
	return r.Edges(ctx, team, "")
}

func (r *usageRepo) Edges(ctx context.Context, team, technology string) ([]domain.UsageEdge, error) {
	records, err := collectRead(ctx, r.client, usageEdgeQuery,
		map[string]any{"team": team, "technology": technology})
	if err != nil {
		return nil, apierr.StoreUnavailable("list usage edges", err)
	}
	out := make([]domain.UsageEdge, 0, len(records))
	for _, rec := range records {
		out = append(out, usageEdgeFromRecord(rec))
	}
	return out, nil
}

func (r *usageRepo) RecordUsage(ctx context.Context, team, technology string, systemCount int, firstUsed, lastVerified string) error {
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $team}), (x:Technology {name: $technology})
MERGE (t)-[u:USES]->(x)
SET u.system_count = $system_count,
    u.first_used = coalesce(u.first_used, $first_used),
    u.last_verified = $last_verified,
    u.updated_at = $now
`, map[string]any{
		"team":          team,
		"technology":    technology,
		"system_count":  int64(systemCount),
		"first_used":    firstUsed,
		"last_verified": lastVerified,
		"now":           time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return apierr.StoreUnavailable("record usage", err)
	}
	return nil
}

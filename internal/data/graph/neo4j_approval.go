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

type approvalRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewApprovalRepo(client *neo4jdb.Client, log *logger.Logger) ApprovalRepo {
	return &approvalRepo{client: client, log: log.With("repo", "ApprovalRepo")}
}

const approvalEdgeReturn = `
RETURN a.time AS time, a.approved_at AS approved_at, a.deprecated_at AS deprecated_at,
       a.eol_date AS eol_date, a.migration_target AS migration_target,
       a.notes AS notes, a.approved_by AS approved_by,
       a.version_constraint AS version_constraint`

func approvalEdgeFromRecord(rec *neo4j.Record) *domain.ApprovalEdge {
	return &domain.ApprovalEdge{
		Time:              domain.Disposition(recString(rec, "time")),
		ApprovedAt:        recString(rec, "approved_at"),
		DeprecatedAt:      recString(rec, "deprecated_at"),
		EOLDate:           recString(rec, "eol_date"),
		MigrationTarget:   recString(rec, "migration_target"),
		Notes:             recString(rec, "notes"),
		ApprovedBy:        recString(rec, "approved_by"),
		VersionConstraint: recString(rec, "version_constraint"),
	}
}

func (r *approvalRepo) TechnologyApproval(ctx context.Context, team, technology string) (*domain.ApprovalEdge, error) {
	records, err := collectRead(ctx, r.client,
		`MATCH (t:Team {name: $team})-[a:APPROVES]->(x:Technology {name: $technology})`+approvalEdgeReturn,
		map[string]any{"team": team, "technology": technology})
	if err != nil {
		return nil, apierr.StoreUnavailable("get technology approval", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return approvalEdgeFromRecord(records[0]), nil
}

func (r *approvalRepo) VersionApproval(ctx context.Context, team, technology, version string) (*domain.ApprovalEdge, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (t:Team {name: $team})-[a:APPROVES]->(v:Version {version: $version})<-[:HAS_VERSION]-(x:Technology {name: $technology})
`+approvalEdgeReturn,
		map[string]any{"team": team, "technology": technology, "version": version})
	if err != nil {
		return nil, apierr.StoreUnavailable("get version approval", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return approvalEdgeFromRecord(records[0]), nil
}

func approvalEdgeParams(edge *domain.ApprovalEdge) map[string]any {
	return map[string]any{
		"time":               string(edge.Time),
		"approved_at":        edge.ApprovedAt,
		"deprecated_at":      edge.DeprecatedAt,
		"eol_date":           edge.EOLDate,
		"migration_target":   edge.MigrationTarget,
		"notes":              edge.Notes,
		"approved_by":        edge.ApprovedBy,
		"version_constraint": edge.VersionConstraint,
		"now":                time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func (r *approvalRepo) UpsertTechnologyApproval(ctx context.Context, team, technology string, edge *domain.ApprovalEdge) error {
	params := approvalEdgeParams(edge)
	params["team"] = team
	params["technology"] = technology
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $team}), (x:Technology {name: $technology})
MERGE (t)-[a:APPROVES]->(x)
SET a.time = $time,
    a.approved_at = $approved_at,
    a.deprecated_at = $deprecated_at,
    a.eol_date = $eol_date,
    a.migration_target = $migration_target,
    a.notes = $notes,
    a.approved_by = $approved_by,
    a.version_constraint = $version_constraint,
    a.updated_at = $now
`, params)
	if err != nil {
		return apierr.StoreUnavailable("upsert technology approval", err)
	}
	return nil
}

func (r *approvalRepo) UpsertVersionApproval(ctx context.Context, team, technology, version string, edge *domain.ApprovalEdge) error {
	params := approvalEdgeParams(edge)
	params["team"] = team
	params["technology"] = technology
	params["version"] = version
	// Version-level edges never carry a constraint; the edge is the version.
	delete(params, "version_constraint")
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $team}), (x:Technology {name: $technology})-[:HAS_VERSION]->(v:Version {version: $version})
MERGE (t)-[a:APPROVES]->(v)
SET a.time = $time,
    a.approved_at = $approved_at,
    a.deprecated_at = $deprecated_at,
    a.eol_date = $eol_date,
    a.migration_target = $migration_target,
    a.notes = $notes,
    a.approved_by = $approved_by,
    a.updated_at = $now
`, params)
	if err != nil {
		return apierr.StoreUnavailable("upsert version approval", err)
	}
	return nil
}

func (r *approvalRepo) RemoveTechnologyApproval(ctx context.Context, team, technology string) error {
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $team})-[a:APPROVES]->(x:Technology {name: $technology})
DELETE a
`, map[string]any{"team": team, "technology": technology})
	if err != nil {
		return apierr.StoreUnavailable("remove technology approval", err)
	}
	return nil
}

package graph

import (
	"context"
	"time"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

type systemRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewSystemRepo(client *neo4jdb.Client, log *logger.Logger) SystemRepo {
	return &systemRepo{client: client, log: log.With("repo", "SystemRepo")}
}

func (r *systemRepo) List(ctx context.Context) ([]*domain.System, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (s:System)
OPTIONAL MATCH (o:Team)-[:OWNS]->(s)
RETURN s.name AS name, s.description AS description, s.domain AS domain,
       s.criticality AS criticality, head(collect(o.name)) AS owner
ORDER BY s.name
`, nil)
	if err != nil {
		return nil, apierr.StoreUnavailable("list systems", err)
	}
	out := make([]*domain.System, 0, len(records))
	for _, rec := range records {
		out = append(out, &domain.System{
			Name:        recString(rec, "name"),
			Description: recString(rec, "description"),
			Domain:      recString(rec, "domain"),
			Criticality: recString(rec, "criticality"),
			Owner:       recString(rec, "owner"),
		})
	}
	return out, nil
}

func (r *systemRepo) Upsert(ctx context.Context, system *domain.System) error {
	err := runWrite(ctx, r.client, `
MERGE (s:System {name: $name})
SET s.description = $description,
    s.domain = $domain,
    s.criticality = $criticality,
    s.updated_at = $now
WITH s
CALL {
    WITH s
    WITH s WHERE $owner <> ''
    MATCH (t:Team {name: $owner})
    MERGE (t)-[:OWNS]->(s)
}
`, map[string]any{
		"name":        system.Name,
		"description": system.Description,
		"domain":      system.Domain,
		"criticality": system.Criticality,
		"owner":       system.Owner,
		"now":         time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return apierr.StoreUnavailable("upsert system", err)
	}
	return nil
}

func (r *systemRepo) Delete(ctx context.Context, name string) error {
	err := runWrite(ctx, r.client, `
MATCH (s:System {name: $name})
DETACH DELETE s
`, map[string]any{"name": name})
	if err != nil {
		return apierr.StoreUnavailable("delete system", err)
	}
	return nil
}

func (r *systemRepo) AttachComponent(ctx context.Context, system string, component *domain.Component) error {
	err := runWrite(ctx, r.client, `
MATCH (s:System {name: $system})
MERGE (c:Component {name: $name, version: $version})
SET c.ecosystem = $ecosystem
MERGE (s)-[:HAS_SOURCE_IN]->(c)
`, map[string]any{
		"system":    system,
		"name":      component.Name,
		"version":   component.Version,
		"ecosystem": component.Ecosystem,
	})
	if err != nil {
		return apierr.StoreUnavailable("attach component", err)
	}
	return nil
}

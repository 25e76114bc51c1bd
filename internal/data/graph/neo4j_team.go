package graph

import (
	"context"
	"time"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

type teamRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewTeamRepo(client *neo4jdb.Client, log *logger.Logger) TeamRepo {
	return &teamRepo{client: client, log: log.With("repo", "TeamRepo")}
}

func (r *teamRepo) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (t:Team {name: $name})
RETURN t.name AS name, t.email AS email, t.responsibility AS responsibility
`, map[string]any{"name": name})
	if err != nil {
		return nil, apierr.StoreUnavailable("get team", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &domain.Team{
		Name:           recString(rec, "name"),
		Email:          recString(rec, "email"),
		Responsibility: recString(rec, "responsibility"),
	}, nil
}

func (r *teamRepo) List(ctx context.Context) ([]*domain.Team, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (t:Team)
RETURN t.name AS name, t.email AS email, t.responsibility AS responsibility
ORDER BY t.name
`, nil)
	if err != nil {
		return nil, apierr.StoreUnavailable("list teams", err)
	}
	out := make([]*domain.Team, 0, len(records))
	for _, rec := range records {
		out = append(out, &domain.Team{
			Name:           recString(rec, "name"),
			Email:          recString(rec, "email"),
			Responsibility: recString(rec, "responsibility"),
		})
	}
	return out, nil
}

func (r *teamRepo) Upsert(ctx context.Context, team *domain.Team) error {
	err := runWrite(ctx, r.client, `
MERGE (t:Team {name: $name})
SET t.email = $email,
    t.responsibility = $responsibility,
    t.updated_at = $now
`, map[string]any{
		"name":           team.Name,
		"email":          team.Email,
		"responsibility": team.Responsibility,
		"now":            time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return apierr.StoreUnavailable("upsert team", err)
	}
	return nil
}

func (r *teamRepo) Delete(ctx context.Context, name string) error {
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $name})
DETACH DELETE t
`, map[string]any{"name": name})
	if err != nil {
		return apierr.StoreUnavailable("delete team", err)
	}
	return nil
}

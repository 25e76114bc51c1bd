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

type technologyRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewTechnologyRepo(client *neo4jdb.Client, log *logger.Logger) TechnologyRepo {
	return &technologyRepo{client: client, log: log.With("repo", "TechnologyRepo")}
}

func technologyFromRecord(rec *neo4j.Record) *domain.Technology {
	return &domain.Technology{
		Name:                 recString(rec, "name"),
		Category:             recString(rec, "category"),
		Vendor:               recString(rec, "vendor"),
		RiskLevel:            recString(rec, "risk_level"),
		ApprovedVersionRange: recString(rec, "approved_version_range"),
		LastReviewed:         recString(rec, "last_reviewed"),
	}
}

const technologyReturn = `
RETURN x.name AS name, x.category AS category, x.vendor AS vendor,
       x.risk_level AS risk_level, x.approved_version_range AS approved_version_range,
       x.last_reviewed AS last_reviewed`

func (r *technologyRepo) GetByName(ctx context.Context, name string) (*domain.Technology, error) {
	records, err := collectRead(ctx, r.client,
		`MATCH (x:Technology {name: $name})`+technologyReturn,
		map[string]any{"name": name})
	if err != nil {
		return nil, apierr.StoreUnavailable("get technology", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return technologyFromRecord(records[0]), nil
}

func (r *technologyRepo) List(ctx context.Context, category, vendor string) ([]*domain.Technology, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (x:Technology)
WHERE ($category = '' OR x.category = $category)
  AND ($vendor = '' OR x.vendor = $vendor)
`+technologyReturn+`
ORDER BY x.name
`, map[string]any{"category": category, "vendor": vendor})
	if err != nil {
		return nil, apierr.StoreUnavailable("list technologies", err)
	}
	out := make([]*domain.Technology, 0, len(records))
	for _, rec := range records {
		out = append(out, technologyFromRecord(rec))
	}
	return out, nil
}

func (r *technologyRepo) Upsert(ctx context.Context, tech *domain.Technology) error {
	err := runWrite(ctx, r.client, `
MERGE (x:Technology {name: $name})
SET x.category = $category,
    x.vendor = $vendor,
    x.risk_level = $risk_level,
    x.approved_version_range = $approved_version_range,
    x.last_reviewed = $last_reviewed,
    x.updated_at = $now
`, map[string]any{
		"name":                   tech.Name,
		"category":               tech.Category,
		"vendor":                 tech.Vendor,
		"risk_level":             tech.RiskLevel,
		"approved_version_range": tech.ApprovedVersionRange,
		"last_reviewed":          tech.LastReviewed,
		"now":                    time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return apierr.StoreUnavailable("upsert technology", err)
	}
	return nil
}

func (r *technologyRepo) Delete(ctx context.Context, name string) error {
	// Versions are scoped to the technology and go with it.
	err := runWrite(ctx, r.client, `
MATCH (x:Technology {name: $name})
OPTIONAL MATCH (x)-[:HAS_VERSION]->(v:Version)
DETACH DELETE v, x
`, map[string]any{"name": name})
	if err != nil {
		return apierr.StoreUnavailable("delete technology", err)
	}
	return nil
}

func (r *technologyRepo) GetVersion(ctx context.Context, technology, version string) (*domain.Version, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (x:Technology {name: $technology})-[:HAS_VERSION]->(v:Version {version: $version})
RETURN x.name AS technology, v.version AS version, v.release_date AS release_date,
       v.eol_date AS eol_date, v.approved AS approved, v.cvss_score AS cvss_score
`, map[string]any{"technology": technology, "version": version})
	if err != nil {
		return nil, apierr.StoreUnavailable("get version", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return versionFromRecord(records[0]), nil
}

func (r *technologyRepo) ListVersions(ctx context.Context, technology string) ([]*domain.Version, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (x:Technology {name: $technology})-[:HAS_VERSION]->(v:Version)
RETURN x.name AS technology, v.version AS version, v.release_date AS release_date,
       v.eol_date AS eol_date, v.approved AS approved, v.cvss_score AS cvss_score
ORDER BY v.version
`, map[string]any{"technology": technology})
	if err != nil {
		return nil, apierr.StoreUnavailable("list versions", err)
	}
	out := make([]*domain.Version, 0, len(records))
	for _, rec := range records {
		out = append(out, versionFromRecord(rec))
	}
	return out, nil
}

func versionFromRecord(rec *neo4j.Record) *domain.Version {
	return &domain.Version{
		Technology:  recString(rec, "technology"),
		Version:     recString(rec, "version"),
		ReleaseDate: recString(rec, "release_date"),
		EOLDate:     recString(rec, "eol_date"),
		Approved:    recBool(rec, "approved"),
		CVSSScore:   recFloat(rec, "cvss_score"),
	}
}

func (r *technologyRepo) UpsertVersion(ctx context.Context, v *domain.Version) error {
	err := runWrite(ctx, r.client, `
MATCH (x:Technology {name: $technology})
MERGE (x)-[:HAS_VERSION]->(v:Version {technology: $technology, version: $version})
SET v.release_date = $release_date,
    v.eol_date = $eol_date,
    v.approved = $approved,
    v.cvss_score = $cvss_score,
    v.updated_at = $now
`, map[string]any{
		"technology":   v.Technology,
		"version":      v.Version,
		"release_date": v.ReleaseDate,
		"eol_date":     v.EOLDate,
		"approved":     v.Approved,
		"cvss_score":   v.CVSSScore,
		"now":          time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return apierr.StoreUnavailable("upsert version", err)
	}
	return nil
}

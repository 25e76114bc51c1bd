// Package graph is the entity-store boundary: parameterized Cypher reads and
// writes against the catalog graph. Every decision rule lives above this
// package; repos only ask patterns and shape rows.
package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

// TeamRepo reads and writes Team nodes. Lookups return (nil, nil) when the
// node does not exist; absence is not a store failure.
type TeamRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Upsert(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, name string) error
}

// TechnologyRepo reads and writes Technology and Version nodes.
type TechnologyRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Technology, error)
	List(ctx context.Context, category, vendor string) ([]*domain.Technology, error)
	Upsert(ctx context.Context, tech *domain.Technology) error
	Delete(ctx context.Context, name string) error
	GetVersion(ctx context.Context, technology, version string) (*domain.Version, error)
	ListVersions(ctx context.Context, technology string) ([]*domain.Version, error)
	UpsertVersion(ctx context.Context, v *domain.Version) error
}

// ApprovalRepo reads and writes APPROVES edges. The store keeps at most one
// edge per (team, technology) and per (team, version) pair via MERGE.
type ApprovalRepo interface {
	TechnologyApproval(ctx context.Context, team, technology string) (*domain.ApprovalEdge, error)
	VersionApproval(ctx context.Context, team, technology, version string) (*domain.ApprovalEdge, error)
	UpsertTechnologyApproval(ctx context.Context, team, technology string, edge *domain.ApprovalEdge) error
	UpsertVersionApproval(ctx context.Context, team, technology, version string, edge *domain.ApprovalEdge) error
	RemoveTechnologyApproval(ctx context.Context, team, technology string) error
}

// UsageRepo reads and writes USES edges. Rows carry the team's optional
// technology-level approval disposition via OPTIONAL MATCH.
type UsageRepo interface {
	EdgesForTeam(ctx context.Context, team string) ([]domain.UsageEdge, error)
	Edges(ctx context.Context, team, technology string) ([]domain.UsageEdge, error)
	RecordUsage(ctx context.Context, team, technology string, systemCount int, firstUsed, lastVerified string) error
}

// PolicyRepo reads and writes Policy nodes and their governance edges.
type PolicyRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Policy, error)
	List(ctx context.Context) ([]*domain.Policy, error)
	Upsert(ctx context.Context, policy *domain.Policy) error
	Delete(ctx context.Context, name string) error
	ActiveGoverning(ctx context.Context, team, technology string) ([]domain.GoverningPolicy, error)
	AttachGoverns(ctx context.Context, policy, technology string) error
	AttachSubjectTo(ctx context.Context, team, policy string) error
	AttachEnforces(ctx context.Context, team, policy string) error
}

// SystemRepo reads and writes System nodes and their ownership/SBOM edges.
type SystemRepo interface {
	List(ctx context.Context) ([]*domain.System, error)
	Upsert(ctx context.Context, system *domain.System) error
	Delete(ctx context.Context, name string) error
	AttachComponent(ctx context.Context, system string, component *domain.Component) error
}

func readSession(ctx context.Context, client *neo4jdb.Client) neo4j.SessionWithContext {
	return client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
}

func writeSession(ctx context.Context, client *neo4jdb.Client) neo4j.SessionWithContext {
	return client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
}

// runWrite executes one parameterized write statement and consumes the result.
func runWrite(ctx context.Context, client *neo4jdb.Client, query string, params map[string]any) error {
	session := writeSession(ctx, client)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// collectRead executes one parameterized read statement and collects all rows.
func collectRead(ctx context.Context, client *neo4jdb.Client, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := readSession(ctx, client)
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, _ := rows.([]*neo4j.Record)
	return records, nil
}

func recString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recInt(rec *neo4j.Record, key string) int {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func recFloat(rec *neo4j.Record, key string) float64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func recBool(rec *neo4j.Record, key string) bool {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

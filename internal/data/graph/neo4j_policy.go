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

type policyRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewPolicyRepo(client *neo4jdb.Client, log *logger.Logger) PolicyRepo {
	return &policyRepo{client: client, log: log.With("repo", "PolicyRepo")}
}

const policyReturn = `
RETURN p.name AS name, p.description AS description, p.rule_type AS rule_type,
       p.severity AS severity, p.effective_date AS effective_date,
       p.expiry_date AS expiry_date, p.scope AS scope, p.status AS status`

func policyFromRecord(rec *neo4j.Record) *domain.Policy {
	return &domain.Policy{
		Name:          recString(rec, "name"),
		Description:   recString(rec, "description"),
		RuleType:      recString(rec, "rule_type"),
		Severity:      domain.Severity(recString(rec, "severity")),
		EffectiveDate: recString(rec, "effective_date"),
		ExpiryDate:    recString(rec, "expiry_date"),
		Scope:         recString(rec, "scope"),
		Status:        recString(rec, "status"),
	}
}

func (r *policyRepo) GetByName(ctx context.Context, name string) (*domain.Policy, error) {
	records, err := collectRead(ctx, r.client,
		`MATCH (p:Policy {name: $name})`+policyReturn,
		map[string]any{"name": name})
	if err != nil {
		return nil, apierr.StoreUnavailable("get policy", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return policyFromRecord(records[0]), nil
}

func (r *policyRepo) List(ctx context.Context) ([]*domain.Policy, error) {
	records, err := collectRead(ctx, r.client,
		`MATCH (p:Policy)`+policyReturn+`
ORDER BY p.name`, nil)
	if err != nil {
		return nil, apierr.StoreUnavailable("list policies", err)
	}
	out := make([]*domain.Policy, 0, len(records))
	for _, rec := range records {
		out = append(out, policyFromRecord(rec))
	}
	return out, nil
}

func (r *policyRepo) Upsert(ctx context.Context, policy *domain.Policy) error {
	err := runWrite(ctx, r.client, `
MERGE (p:Policy {name: $name})
SET p.description = $description,
    p.rule_type = $rule_type,
    p.severity = $severity,
    p.effective_date = $effective_date,
    p.expiry_date = $expiry_date,
    p.scope = $scope,
    p.status = $status,
    p.updated_at = $now
`, map[string]any{
		"name":           policy.Name,
		"description":    policy.Description,
		"rule_type":      policy.RuleType,
		"severity":       string(policy.Severity),
		"effective_date": policy.EffectiveDate,
		"expiry_date":    policy.ExpiryDate,
		"scope":          policy.Scope,
		"status":         policy.Status,
		"now":            time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return apierr.StoreUnavailable("upsert policy", err)
	}
	return nil
}

func (r *policyRepo) Delete(ctx context.Context, name string) error {
	err := runWrite(ctx, r.client, `
MATCH (p:Policy {name: $name})
DETACH DELETE p
`, map[string]any{"name": name})
	if err != nil {
		return apierr.StoreUnavailable("delete policy", err)
	}
	return nil
}

// ActiveGoverning returns the active policies that govern technology and that
// team is subject to, each with its enforcing team when one exists.
func (r *policyRepo) ActiveGoverning(ctx context.Context, team, technology string) ([]domain.GoverningPolicy, error) {
	records, err := collectRead(ctx, r.client, `
MATCH (p:Policy {status: $active})-[:GOVERNS]->(x:Technology {name: $technology})
MATCH (t:Team {name: $team})-[:SUBJECT_TO]->(p)
OPTIONAL MATCH (e:Team)-[:ENFORCES]->(p)
RETURN p.name AS name, p.description AS description, p.severity AS severity,
       p.rule_type AS rule_type, head(collect(e.name)) AS enforced_by
ORDER BY p.name
`, map[string]any{
		"team":       team,
		"technology": technology,
		"active":     domain.PolicyStatusActive,
	})
	if err != nil {
		return nil, apierr.StoreUnavailable("list governing policies", err)
	}
	out := make([]domain.GoverningPolicy, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.GoverningPolicy{
			Name:        recString(rec, "name"),
			Description: recString(rec, "description"),
			Severity:    domain.Severity(recString(rec, "severity")),
			RuleType:    recString(rec, "rule_type"),
			EnforcedBy:  recString(rec, "enforced_by"),
		})
	}
	return out, nil
}

func (r *policyRepo) AttachGoverns(ctx context.Context, policy, technology string) error {
	err := runWrite(ctx, r.client, `
MATCH (p:Policy {name: $policy}), (x:Technology {name: $technology})
MERGE (p)-[:GOVERNS]->(x)
`, map[string]any{"policy": policy, "technology": technology})
	if err != nil {
		return apierr.StoreUnavailable("attach governs", err)
	}
	return nil
}

func (r *policyRepo) AttachSubjectTo(ctx context.Context, team, policy string) error {
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $team}), (p:Policy {name: $policy})
MERGE (t)-[:SUBJECT_TO]->(p)
`, map[string]any{"team": team, "policy": policy})
	if err != nil {
		return apierr.StoreUnavailable("attach subject_to", err)
	}
	return nil
}

func (r *policyRepo) AttachEnforces(ctx context.Context, team, policy string) error {
	err := runWrite(ctx, r.client, `
MATCH (t:Team {name: $team}), (p:Policy {name: $policy})
MERGE (t)-[:ENFORCES]->(p)
`, map[string]any{"team": team, "policy": policy})
	if err != nil {
		return apierr.StoreUnavailable("attach enforces", err)
	}
	return nil
}

// Command seed loads a YAML fixture into the catalog graph. It is meant for
// local development and demo environments, not production data migration.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/techgov/catalog-backend/internal/app"
	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

type teamSeed struct {
	Name           string `yaml:"name"`
	Email          string `yaml:"email"`
	Responsibility string `yaml:"responsibility"`
}

type technologySeed struct {
	Name                 string `yaml:"name"`
	Category             string `yaml:"category"`
	Vendor               string `yaml:"vendor"`
	RiskLevel            string `yaml:"riskLevel"`
	ApprovedVersionRange string `yaml:"approvedVersionRange"`
	LastReviewed         string `yaml:"lastReviewed"`
}

type versionSeed struct {
	Technology  string  `yaml:"technology"`
	Version     string  `yaml:"version"`
	ReleaseDate string  `yaml:"releaseDate"`
	EOLDate     string  `yaml:"eolDate"`
	Approved    bool    `yaml:"approved"`
	CVSSScore   float64 `yaml:"cvssScore"`
}

type policySeed struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	RuleType      string `yaml:"ruleType"`
	Severity      string `yaml:"severity"`
	EffectiveDate string `yaml:"effectiveDate"`
	ExpiryDate    string `yaml:"expiryDate"`
	Scope         string `yaml:"scope"`
	Status        string `yaml:"status"`
}

type approvalSeed struct {
	Team              string `yaml:"team"`
	Technology        string `yaml:"technology"`
	Version           string `yaml:"version"`
	Time              string `yaml:"time"`
	ApprovedAt        string `yaml:"approvedAt"`
	ApprovedBy        string `yaml:"approvedBy"`
	MigrationTarget   string `yaml:"migrationTarget"`
	Notes             string `yaml:"notes"`
	VersionConstraint string `yaml:"versionConstraint"`
}

type usageSeed struct {
	Team         string `yaml:"team"`
	Technology   string `yaml:"technology"`
	SystemCount  int    `yaml:"systemCount"`
	FirstUsed    string `yaml:"firstUsed"`
	LastVerified string `yaml:"lastVerified"`
}

type edgeSeed struct {
	Team       string `yaml:"team"`
	Policy     string `yaml:"policy"`
	Technology string `yaml:"technology"`
}

type systemSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Domain      string `yaml:"domain"`
	Criticality string `yaml:"criticality"`
	Owner       string `yaml:"owner"`
}

type fixture struct {
	Teams        []teamSeed       `yaml:"teams"`
	Technologies []technologySeed `yaml:"technologies"`
	Versions     []versionSeed    `yaml:"versions"`
	Policies     []policySeed     `yaml:"policies"`
	Approvals    []approvalSeed   `yaml:"approvals"`
	Usage        []usageSeed      `yaml:"usage"`
	Governs      []edgeSeed       `yaml:"governs"`
	SubjectTo    []edgeSeed       `yaml:"subjectTo"`
	Enforces     []edgeSeed       `yaml:"enforces"`
	Systems      []systemSeed     `yaml:"systems"`
}

func main() {
	file := pflag.StringP("file", "f", "examples/seed.yaml", "YAML fixture to load")
	initSchema := pflag.Bool("init-schema", true, "create constraints and indexes before loading")
	pflag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := app.LoadConfig(log)
	client, err := neo4jdb.New(cfg.Neo4j, log)
	if err != nil {
		log.Fatal("graph store init failed", "error", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	if *initSchema {
		graph.InitSchema(ctx, client, log)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("read fixture failed", "file", *file, "error", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		log.Fatal("parse fixture failed", "file", *file, "error", err)
	}

	teams := graph.NewTeamRepo(client, log)
	technologies := graph.NewTechnologyRepo(client, log)
	approvals := graph.NewApprovalRepo(client, log)
	usage := graph.NewUsageRepo(client, log)
	policies := graph.NewPolicyRepo(client, log)
	systems := graph.NewSystemRepo(client, log)

	for _, t := range fx.Teams {
		must(log, "team", t.Name, teams.Upsert(ctx, &domain.Team{
			Name: t.Name, Email: t.Email, Responsibility: t.Responsibility,
		}))
	}
	for _, x := range fx.Technologies {
		must(log, "technology", x.Name, technologies.Upsert(ctx, &domain.Technology{
			Name:                 x.Name,
			Category:             x.Category,
			Vendor:               x.Vendor,
			RiskLevel:            x.RiskLevel,
			ApprovedVersionRange: x.ApprovedVersionRange,
			LastReviewed:         x.LastReviewed,
		}))
	}
	for _, v := range fx.Versions {
		must(log, "version", v.Technology+"@"+v.Version, technologies.UpsertVersion(ctx, &domain.Version{
			Technology:  v.Technology,
			Version:     v.Version,
			ReleaseDate: v.ReleaseDate,
			EOLDate:     v.EOLDate,
			Approved:    v.Approved,
			CVSSScore:   v.CVSSScore,
		}))
	}
	for _, p := range fx.Policies {
		must(log, "policy", p.Name, policies.Upsert(ctx, &domain.Policy{
			Name:          p.Name,
			Description:   p.Description,
			RuleType:      p.RuleType,
			Severity:      domain.Severity(p.Severity),
			EffectiveDate: p.EffectiveDate,
			ExpiryDate:    p.ExpiryDate,
			Scope:         p.Scope,
			Status:        p.Status,
		}))
	}
	for _, a := range fx.Approvals {
		edge := &domain.ApprovalEdge{
			Time:              domain.Disposition(a.Time),
			ApprovedAt:        a.ApprovedAt,
			ApprovedBy:        a.ApprovedBy,
			MigrationTarget:   a.MigrationTarget,
			Notes:             a.Notes,
			VersionConstraint: a.VersionConstraint,
		}
		if a.Version != "" {
			must(log, "version approval", a.Team+"->"+a.Technology+"@"+a.Version,
				approvals.UpsertVersionApproval(ctx, a.Team, a.Technology, a.Version, edge))
		} else {
			must(log, "technology approval", a.Team+"->"+a.Technology,
				approvals.UpsertTechnologyApproval(ctx, a.Team, a.Technology, edge))
		}
	}
	for _, u := range fx.Usage {
		must(log, "usage", u.Team+"->"+u.Technology,
			usage.RecordUsage(ctx, u.Team, u.Technology, u.SystemCount, u.FirstUsed, u.LastVerified))
	}
	for _, g := range fx.Governs {
		must(log, "governs", g.Policy+"->"+g.Technology, policies.AttachGoverns(ctx, g.Policy, g.Technology))
	}
	for _, s := range fx.SubjectTo {
		must(log, "subject_to", s.Team+"->"+s.Policy, policies.AttachSubjectTo(ctx, s.Team, s.Policy))
	}
	for _, e := range fx.Enforces {
		must(log, "enforces", e.Team+"->"+e.Policy, policies.AttachEnforces(ctx, e.Team, e.Policy))
	}
	for _, s := range fx.Systems {
		must(log, "system", s.Name, systems.Upsert(ctx, &domain.System{
			Name:        s.Name,
			Description: s.Description,
			Domain:      s.Domain,
			Criticality: s.Criticality,
			Owner:       s.Owner,
		}))
	}

	log.Info("fixture loaded",
		"file", *file,
		"teams", len(fx.Teams),
		"technologies", len(fx.Technologies),
		"versions", len(fx.Versions),
		"policies", len(fx.Policies),
		"approvals", len(fx.Approvals),
		"usage_edges", len(fx.Usage),
		"systems", len(fx.Systems),
	)
}

func must(log *logger.Logger, kind, key string, err error) {
	if err != nil {
		log.Fatal("seed failed", "kind", kind, "key", key, "error", err)
	}
}

package app

import (
	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

type Repos struct {
	Teams        graph.TeamRepo
	Technologies graph.TechnologyRepo
	Approvals    graph.ApprovalRepo
	Usage        graph.UsageRepo
	Policies     graph.PolicyRepo
	Systems      graph.SystemRepo
}

func wireRepos(client *neo4jdb.Client, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Teams:        graph.NewTeamRepo(client, log),
		Technologies: graph.NewTechnologyRepo(client, log),
		Approvals:    graph.NewApprovalRepo(client, log),
		Usage:        graph.NewUsageRepo(client, log),
		Policies:     graph.NewPolicyRepo(client, log),
		Systems:      graph.NewSystemRepo(client, log),
	}
}

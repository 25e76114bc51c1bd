package app

import (
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type Services struct {
	Approval services.ApprovalService
	Policy   services.PolicyService
	Usage    services.UsageService
	Catalog  services.CatalogService
}

func wireServices(log *logger.Logger, repos Repos, events services.EventPublisher) Services {
	log.Info("Wiring services...")
	return Services{
		Approval: services.NewApprovalService(log, repos.Teams, repos.Technologies, repos.Approvals),
		Policy:   services.NewPolicyService(log, repos.Usage, repos.Policies),
		Usage:    services.NewUsageService(log, repos.Teams, repos.Usage),
		Catalog: services.NewCatalogService(
			log,
			repos.Teams,
			repos.Technologies,
			repos.Approvals,
			repos.Usage,
			repos.Policies,
			repos.Systems,
			events,
		),
	}
}

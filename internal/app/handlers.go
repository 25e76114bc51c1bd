package app

import (
	"github.com/techgov/catalog-backend/internal/handlers"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/sse"
)

type Handlers struct {
	Ready      *handlers.ReadyHandler
	Approval   *handlers.ApprovalHandler
	Violations *handlers.ViolationsHandler
	Usage      *handlers.UsageHandler
	Team       *handlers.TeamHandler
	Technology *handlers.TechnologyHandler
	Policy     *handlers.PolicyHandler
	System     *handlers.SystemHandler
	Events     *handlers.EventsHandler
}

func wireHandlers(log *logger.Logger, svcs Services, hub *sse.Hub, readyDeps map[string]handlers.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Ready:      handlers.NewReadyHandler(log, readyDeps),
		Approval:   handlers.NewApprovalHandler(log, svcs.Approval),
		Violations: handlers.NewViolationsHandler(log, svcs.Policy),
		Usage:      handlers.NewUsageHandler(log, svcs.Usage),
		Team:       handlers.NewTeamHandler(log, svcs.Catalog),
		Technology: handlers.NewTechnologyHandler(log, svcs.Catalog),
		Policy:     handlers.NewPolicyHandler(log, svcs.Catalog),
		System:     handlers.NewSystemHandler(log, svcs.Catalog),
		Events:     handlers.NewEventsHandler(log, hub),
	}
}

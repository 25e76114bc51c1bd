package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/clients/redis"
	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/handlers"
	"github.com/techgov/catalog-backend/internal/observability"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
	"github.com/techgov/catalog-backend/internal/server"
	"github.com/techgov/catalog-backend/internal/services"
	"github.com/techgov/catalog-backend/internal/sse"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Neo4j    *neo4jdb.Client
	Bus      redis.EventBus
	Hub      *sse.Hub
	Router   *gin.Engine
	Repos    Repos
	Services Services

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// hubPublisher publishes straight to the in-process hub when no redis bus is
// configured (single-instance deployments).
type hubPublisher struct {
	hub *sse.Hub
}

func (p hubPublisher) Publish(_ context.Context, msg sse.Message) error {
	p.hub.Publish(msg)
	return nil
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	client, err := neo4jdb.New(cfg.Neo4j, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init graph store: %w", err)
	}
	graph.InitSchema(ctx, client, log)

	hub := sse.NewHub(log)

	var bus redis.EventBus
	var events services.EventPublisher = hubPublisher{hub: hub}
	if cfg.RedisAddr != "" {
		bus, err = redis.NewEventBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			log.Warn("redis event bus init failed, events stay in-process", "error", err)
			bus = nil
		} else {
			events = bus
		}
	}

	reposet := wireRepos(client, log)
	serviceset := wireServices(log, reposet, events)

	readyDeps := map[string]handlers.Pinger{"neo4j": client}
	if bus != nil {
		readyDeps["redis"] = bus
	}
	handlerset := wireHandlers(log, serviceset, hub, readyDeps)

	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		ServiceName:       cfg.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		ReadyHandler:      handlerset.Ready,
		ApprovalHandler:   handlerset.Approval,
		ViolationsHandler: handlerset.Violations,
		UsageHandler:      handlerset.Usage,
		TeamHandler:       handlerset.Team,
		TechnologyHandler: handlerset.Technology,
		PolicyHandler:     handlerset.Policy,
		SystemHandler:     handlerset.System,
		EventsHandler:     handlerset.Events,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Neo4j:        client,
		Bus:          bus,
		Hub:          hub,
		Router:       router,
		Repos:        reposet,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background work: the redis forwarder that feeds bus events
// into the local SSE hub.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Bus != nil {
		if err := a.Bus.StartForwarder(ctx, func(m sse.Message) {
			a.Hub.Publish(m)
		}); err != nil {
			a.Log.Warn("event bus forwarder failed to start", "error", err)
		}
	}
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	ctx := context.Background()
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.Neo4j != nil {
		_ = a.Neo4j.Close(ctx)
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

package accountservice

import (
	"log/slog"
	"time"

	httpadapter "advidly/contexts/identity-access/account-service/adapters/http"
	"advidly/contexts/identity-access/account-service/adapters/memory"
	"advidly/contexts/identity-access/account-service/application"
	"advidly/contexts/identity-access/account-service/application/workers"
	"advidly/contexts/identity-access/account-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Pruner  workers.SessionPruner
	Store   *memory.Store
}

type Dependencies struct {
	Users      ports.UserRepository
	Sessions   ports.SessionRepository
	Clock      ports.Clock
	Tokens     ports.TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:      deps.Users,
		Sessions:   deps.Sessions,
		Clock:      deps.Clock,
		Tokens:     deps.Tokens,
		SessionTTL: deps.SessionTTL,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Pruner: workers.SessionPruner{
			Sessions: deps.Sessions,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:      store,
		Sessions:   store,
		Clock:      store,
		Tokens:     store,
		SessionTTL: 24 * time.Hour,
		Logger:     logger,
	})
	module.Store = store
	return module
}

package videoservice

import (
	"log/slog"
	"time"

	httpadapter "advidly/contexts/creator-studio/video-service/adapters/http"
	"advidly/contexts/creator-studio/video-service/adapters/memory"
	"advidly/contexts/creator-studio/video-service/application"
	"advidly/contexts/creator-studio/video-service/application/workers"
	"advidly/contexts/creator-studio/video-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Sweep   workers.ProcessingSweep
	Store   *memory.Store
}

type Dependencies struct {
	Videos          ports.VideoRepository
	Placements      ports.PlacementRepository
	Clock           ports.Clock
	Publisher       ports.EventPublisher
	ProcessingDelay time.Duration
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Videos:          deps.Videos,
		Placements:      deps.Placements,
		Clock:           deps.Clock,
		Publisher:       deps.Publisher,
		ProcessingDelay: deps.ProcessingDelay,
		Logger:          deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Sweep: workers.ProcessingSweep{
			Videos: deps.Videos,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Videos:          store,
		Placements:      store,
		Clock:           store,
		Publisher:       publisher,
		ProcessingDelay: 10 * time.Second,
		Logger:          logger,
	})
	module.Store = store
	return module
}

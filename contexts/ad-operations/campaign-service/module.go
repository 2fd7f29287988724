package campaignservice

import (
	"log/slog"

	httpadapter "advidly/contexts/ad-operations/campaign-service/adapters/http"
	"advidly/contexts/ad-operations/campaign-service/adapters/memory"
	"advidly/contexts/ad-operations/campaign-service/application"
	"advidly/contexts/ad-operations/campaign-service/application/workers"
	"advidly/contexts/ad-operations/campaign-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.EngagementConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Campaigns  ports.CampaignRepository
	Ads        ports.AdRepository
	Clock      ports.Clock
	Subscriber ports.EventSubscriber
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Campaigns: deps.Campaigns,
		Ads:       deps.Ads,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Consumer: workers.EngagementConsumer{
			Service:    service,
			Subscriber: deps.Subscriber,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(subscriber ports.EventSubscriber, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Campaigns:  store,
		Ads:        store,
		Clock:      store,
		Subscriber: subscriber,
		Logger:     logger,
	})
	module.Store = store
	return module
}

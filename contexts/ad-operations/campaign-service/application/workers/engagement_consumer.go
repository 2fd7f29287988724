package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"advidly/contexts/ad-operations/campaign-service/application"
	domainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"
	"advidly/contexts/ad-operations/campaign-service/ports"
	"advidly/internal/shared/events"
)

const placementTrackedTopic = "placement.tracked"

// EngagementConsumer projects placement tracking events from the creator
// side onto ad view and click counters.
type EngagementConsumer struct {
	Service    application.Service
	Subscriber ports.EventSubscriber
	Logger     *slog.Logger
}

type engagementPayload struct {
	AdID   int64 `json:"ad_id"`
	Views  int64 `json:"views"`
	Clicks int64 `json:"clicks"`
}

func (c EngagementConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, placementTrackedTopic, "campaign-service.engagement", c.handle)
}

func (c EngagementConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	raw, err := json.Marshal(envelope.Payload)
	if err != nil {
		return err
	}
	var payload engagementPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	if payload.AdID == 0 {
		// Placements without an ad attached carry nothing to project.
		return nil
	}

	err = c.Service.ApplyEngagement(ctx, payload.AdID, payload.Views, payload.Clicks)
	if errors.Is(err, domainerrors.ErrAdNotFound) {
		logger.Warn("engagement for unknown ad dropped",
			"event", "engagement_dropped",
			"module", "ad-operations/campaign-service",
			"layer", "worker",
			"ad_id", payload.AdID,
		)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("engagement applied",
		"event", "engagement_applied",
		"module", "ad-operations/campaign-service",
		"layer", "worker",
		"ad_id", payload.AdID,
		"views", payload.Views,
		"clicks", payload.Clicks,
	)
	return nil
}

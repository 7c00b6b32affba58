package service

import (
	"context"
	"go-blog-api/model"
	"time"
)

// IEventPublisher receives lifecycle events after successful writes.
type IEventPublisher interface {
	Publish(ctx context.Context, event model.Event)
}

func publish(ctx context.Context, p IEventPublisher, event model.Event) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	p.Publish(ctx, event)
}

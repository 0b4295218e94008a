package worker

import (
	"context"
	"log"

	"mix-service/internal/designer"
	"mix-service/internal/mode"
	"mix-service/internal/redisclient"
	"mix-service/internal/session"
)

// ModeWatcher pushes view-mode changes into live designer sessions. The
// console announces flag changes on a pub/sub channel; on each message
// the watcher re-reads the flag and broadcasts the result.
type ModeWatcher struct {
	client   *redisclient.Client
	detector *mode.Detector
	registry *session.Registry
}

// NewModeWatcher creates a mode watcher.
func NewModeWatcher(client *redisclient.Client, detector *mode.Detector, registry *session.Registry) *ModeWatcher {
	return &ModeWatcher{
		client:   client,
		detector: detector,
		registry: registry,
	}
}

// Start subscribes and blocks until the context is cancelled.
func (w *ModeWatcher) Start(ctx context.Context) error {
	log.Printf("Starting mode watcher on channel: %s", mode.Channel)

	sub := w.client.Subscribe(ctx, mode.Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Println("Mode watcher context cancelled, stopping...")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			current := w.detector.Current(ctx)
			w.registry.ForEach(func(d *designer.Designer) {
				d.SetMode(current)
			})
			log.Printf("View mode refreshed: payload=%s, mode=%s", msg.Payload, current)
		}
	}
}

package designer

import (
	"context"
	"errors"
	"fmt"

	"mix-service/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrConfirmationPending rejects mutating operations while a
	// confirmation dialog is unresolved. The UI is modal during
	// confirmation, so a well-behaved client never triggers this.
	ErrConfirmationPending = errors.New("a confirmation is pending")

	// ErrNoPendingIntent means the resolved intent ID does not match
	// the pending one (or nothing is pending).
	ErrNoPendingIntent = errors.New("no matching pending confirmation")

	ErrIndexOutOfRange = errors.New("component index out of range")
	ErrMixNotFound     = errors.New("saved mix not found")
)

// SystemError wraps an unexpected collaborator failure. In-memory state
// is unchanged from before the attempted operation.
type SystemError struct {
	Text string
	Err  error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("system error: %v", e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// Notification renders the generic retry dialog.
func (e *SystemError) Notification() models.Notification {
	return models.Notification{
		Icon:              models.IconError,
		Title:             "Error del sistema",
		Text:              e.Text,
		ConfirmButtonText: "Reintentar",
	}
}

type intentKind string

const (
	intentRemove intentKind = "remove"
	intentClear  intentKind = "clear"
	intentOrder  intentKind = "order"
)

// intent is a prepared mutation waiting on a yes/no answer. The apply
// function runs with the session lock held.
type intent struct {
	id    string
	kind  intentKind
	apply func(ctx context.Context) (*models.Notification, error)
}

// prepare registers the pending intent and builds its dialog request.
// Caller holds the lock.
func (d *Designer) prepare(kind intentKind, dialog models.Notification, apply func(ctx context.Context) (*models.Notification, error)) *models.ConfirmRequest {
	d.pending = &intent{
		id:    uuid.New().String(),
		kind:  kind,
		apply: apply,
	}
	return &models.ConfirmRequest{
		IntentID:     d.pending.id,
		Notification: dialog,
	}
}

// Resolve answers the pending confirmation. Declining discards the
// prepared intent without touching state; confirming applies it.
func (d *Designer) Resolve(ctx context.Context, intentID string, confirmed bool) (*models.Notification, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil || d.pending.id != intentID {
		return nil, ErrNoPendingIntent
	}

	pending := d.pending
	d.pending = nil

	if !confirmed {
		return nil, nil
	}
	return pending.apply(ctx)
}

// Package mode distinguishes staff from customer-facing operation. The
// flag only changes which follow-up prompts are offered after saving;
// validation is identical in both modes.
package mode

import (
	"context"

	"mix-service/internal/util"

	"go.uber.org/zap"
)

// Mode is the ambient view mode of the console.
type Mode string

const (
	Staff  Mode = "staff"
	Client Mode = "client"
)

// Key is the key-value slot holding the ambient flag. The mix engine
// never writes it.
const Key = "viewMode"

// Channel is the pub/sub channel announcing view-mode changes.
const Channel = "viewmode:changed"

// FromValue maps the stored flag value to a Mode. Only the literal
// "client" selects customer-facing mode.
func FromValue(v string) Mode {
	if v == "client" {
		return Client
	}
	return Staff
}

// StringGetter reads a plain string from the persistent store.
type StringGetter interface {
	GetString(ctx context.Context, key string) (string, error)
}

// Detector reads the ambient view-mode flag.
type Detector struct {
	kv     StringGetter
	logger *zap.Logger
}

// NewDetector creates a view-mode detector over the key-value store.
func NewDetector(kv StringGetter) *Detector {
	return &Detector{
		kv:     kv,
		logger: util.GetLogger(),
	}
}

// Current reads the flag. Read failures fall back to staff mode so the
// console stays operable.
func (d *Detector) Current(ctx context.Context) Mode {
	val, err := d.kv.GetString(ctx, Key)
	if err != nil {
		d.logger.Warn("Failed to read view mode, assuming staff", zap.Error(err))
		return Staff
	}
	return FromValue(val)
}

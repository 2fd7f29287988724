package postgresadapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDTokenGenerator issues opaque session tokens.
type UUIDTokenGenerator struct{}

func (UUIDTokenGenerator) NewToken(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

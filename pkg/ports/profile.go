package ports

import (
	"context"

	"github.com/aretw0/x3launch/pkg/domain"
)

// ProfileWriter persists a connection profile for the launched process to read.
type ProfileWriter interface {
	// Write serializes the profile to path, replacing any existing file.
	// The file must be complete and closed when Write returns.
	// Failures wrap domain.ErrConfigWrite.
	Write(ctx context.Context, profile domain.Profile, path string) error
}

// ProfileReader loads a previously written profile.
type ProfileReader interface {
	Read(ctx context.Context, path string) (domain.Profile, error)
}

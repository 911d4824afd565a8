package editor

import (
	"context"

	"incubator/internal/models"
)

// Saver persists an edited profile and returns the record as stored.
type Saver interface {
	Save(ctx context.Context, p models.Profile) (models.Profile, error)
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, p models.Profile) (models.Profile, error)

func (f SaverFunc) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	return f(ctx, p)
}

// Committer is the store operation the default saver writes through.
type Committer interface {
	CommitProfile(ctx context.Context, p models.Profile) models.Profile
}

// StoreSaver commits edited profiles into the shared directory, replacing the
// owner's existing profile or adding one.
type StoreSaver struct {
	Store Committer
}

func (s StoreSaver) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	return s.Store.CommitProfile(ctx, p), nil
}

package output

import (
	"context"

	"taskrunner/internal/domain/entity"
)

// ProviderPort is the single contract with the external automation
// provider. Everything behind Submit (browser sessions, model calls,
// billed quota) is opaque to this repo.
type ProviderPort interface {
	Name() string
	Submit(ctx context.Context, task string) (*entity.Result, error)
}

type ProviderRegistry interface {
	Register(provider ProviderPort)
	Get(name string) (ProviderPort, bool)
	Names() []string
}

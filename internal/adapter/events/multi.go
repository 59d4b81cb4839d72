package events

import (
	"context"
	"errors"

	"housetasks/internal/core/domain"
	"housetasks/internal/core/ports"
)

// Multi fans an event out to every publisher. All publishers are tried and
// their errors are joined.
type Multi []ports.EventPublisher

func (m Multi) Publish(ctx context.Context, event domain.TransitionEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

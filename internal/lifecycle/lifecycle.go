// Package lifecycle holds the per-entity persistence pipelines: explicit,
// ordered stage lists run by the handler layer around every write, instead
// of callbacks buried in the ORM.
package lifecycle

import (
	"context"

	"gorm.io/gorm"
)

// Stage is one step of a before- or after-persist pipeline. Stages run in
// list order; the first error aborts the write.
type Stage[T any] func(ctx context.Context, tx *gorm.DB, ent *T) error

func Run[T any](ctx context.Context, tx *gorm.DB, ent *T, stages []Stage[T]) error {
	for _, stage := range stages {
		if err := stage(ctx, tx, ent); err != nil {
			return err
		}
	}
	return nil
}

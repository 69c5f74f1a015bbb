package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the point-lookup and full-record-overwrite persistence
// surface shared by the domain services. GetOne uses the non-zero fields
// of query as an identity predicate and returns (nil, nil) when no row
// matches.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]

	GetOne(ctx context.Context, query *T) (*T, error)
	Find(ctx context.Context, query *T) ([]*T, error)
	Create(ctx context.Context, resource *T) error
	// Save writes the full record, inserting when the primary key is not
	// yet present.
	Save(ctx context.Context, resource *T) error
	// Update overwrites the record identified by id with resource.
	Update(ctx context.Context, resourceID any, resource any) error
	Delete(ctx context.Context, resourceID any) error
	Count(ctx context.Context, query *T) (int64, error)
}

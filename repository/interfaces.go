package repository

import (
	"context"

	"indexBenchmark/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	InsertBatch(ctx context.Context, users []models.User) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	SearchByName(ctx context.Context, pattern string) ([]models.User, error)
}

var _ UserRepositoryI = (*UserRepository)(nil)

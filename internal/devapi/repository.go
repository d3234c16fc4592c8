package devapi

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	ConfirmedNames(ctx context.Context, normalized []string) (map[string]bool, error)
	CreateConfirmations(ctx context.Context, rows []*Confirmation) error
	ListConfirmations(ctx context.Context) ([]*Confirmation, error)
	CreatePhoto(ctx context.Context, p *Photo) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ConfirmedNames(ctx context.Context, normalized []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(normalized) == 0 {
		return out, nil
	}
	var found []string
	err := r.db.WithContext(ctx).
		Model(&Confirmation{}).
		Where("normalized_name IN ?", normalized).
		Pluck("normalized_name", &found).Error
	if err != nil {
		return nil, err
	}
	for _, n := range found {
		out[n] = true
	}
	return out, nil
}

// CreateConfirmations stores the whole group or nothing. A unique violation
// on the normalized name surfaces as ErrAlreadyConfirmed.
func (r *repository) CreateConfirmations(ctx context.Context, rows []*Confirmation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rows).Error
	})
	if isUniqueViolation(err) {
		return ErrAlreadyConfirmed
	}
	return err
}

func (r *repository) ListConfirmations(ctx context.Context) ([]*Confirmation, error) {
	var rows []*Confirmation
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) CreatePhoto(ctx context.Context, p *Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

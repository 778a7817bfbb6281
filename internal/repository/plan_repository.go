package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aurasystem/aura-api/internal/models"
)

// PlanRepository reads the plan catalog.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository constructs the repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// FetchActivePlans bulk-loads every active catalog entry. This is the feed
// for the in-process plan cache.
func (r *PlanRepository) FetchActivePlans(ctx context.Context) ([]models.Plan, error) {
	const query = `SELECT id, name, modules, max_patients, max_professionals, is_active, created_at, updated_at
FROM plans WHERE is_active = true ORDER BY name ASC`
	var plans []models.Plan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("fetch active plans: %w", err)
	}
	return plans, nil
}

// FindByName fetches a single catalog entry.
func (r *PlanRepository) FindByName(ctx context.Context, name models.PlanTier) (*models.Plan, error) {
	const query = `SELECT id, name, modules, max_patients, max_professionals, is_active, created_at, updated_at
FROM plans WHERE name = $1`
	var plan models.Plan
	if err := r.db.GetContext(ctx, &plan, query, name); err != nil {
		return nil, err
	}
	return &plan, nil
}

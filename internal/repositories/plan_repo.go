package repositories

import (
	"context"

	"slotify/internal/models"

	"github.com/google/uuid"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	GetActiveByName(ctx context.Context, name string) (*models.Plan, error)
	Update(ctx context.Context, plan *models.Plan) error
	List(ctx context.Context, activeOnly bool) ([]*models.Plan, error)
}

type planRepo struct {
	db Database
}

func NewPlanRepo(db Database) PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Create(ctx context.Context, plan *models.Plan) error {
	query := `
		INSERT INTO plans (id, name, description, price, billing_cycle, customer_limit, provider_limit, features, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, plan.ID, plan.Name, plan.Description, plan.Price, plan.BillingCycle, plan.CustomerLimit, plan.ProviderLimit, plan.Features, plan.IsActive)
	return err
}

func (r *planRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan := &models.Plan{}
	query := `
		SELECT id, name, description, price, billing_cycle, customer_limit, provider_limit, features, is_active, created_at, updated_at
		FROM plans
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.BillingCycle, &plan.CustomerLimit, &plan.ProviderLimit, &plan.Features, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *planRepo) GetActiveByName(ctx context.Context, name string) (*models.Plan, error) {
	plan := &models.Plan{}
	query := `
		SELECT id, name, description, price, billing_cycle, customer_limit, provider_limit, features, is_active, created_at, updated_at
		FROM plans
		WHERE name = $1 AND is_active = true
	`
	err := r.db.QueryRow(ctx, query, name).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.BillingCycle, &plan.CustomerLimit, &plan.ProviderLimit, &plan.Features, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *planRepo) Update(ctx context.Context, plan *models.Plan) error {
	query := `
		UPDATE plans
		SET name = $1, description = $2, price = $3, billing_cycle = $4, customer_limit = $5, provider_limit = $6, features = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, plan.Name, plan.Description, plan.Price, plan.BillingCycle, plan.CustomerLimit, plan.ProviderLimit, plan.Features, plan.IsActive, plan.ID)
	return err
}

func (r *planRepo) List(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	query := `
		SELECT id, name, description, price, billing_cycle, customer_limit, provider_limit, features, is_active, created_at, updated_at
		FROM plans
		WHERE ($1 = false OR is_active = true)
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan := &models.Plan{}
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.BillingCycle, &plan.CustomerLimit, &plan.ProviderLimit, &plan.Features, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

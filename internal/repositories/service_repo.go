package repositories

import (
	"context"

	"slotify/internal/models"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Service, error)
}

type serviceRepo struct {
	db Database
}

func NewServiceRepo(db Database) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (id, partner_id, name, description, price, duration, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, service.ID, service.PartnerID, service.Name, service.Description, service.Price, service.Duration, service.IsActive)
	return err
}

func (r *serviceRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Service, error) {
	service := &models.Service{}
	query := `
		SELECT id, partner_id, name, description, price, duration, is_active, created_at, updated_at
		FROM services
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&service.ID, &service.PartnerID, &service.Name, &service.Description, &service.Price, &service.Duration, &service.IsActive, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (r *serviceRepo) Update(ctx context.Context, service *models.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, price = $3, duration = $4, is_active = $5, updated_at = NOW()
		WHERE partner_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, service.Name, service.Description, service.Price, service.Duration, service.IsActive, service.PartnerID, service.ID)
	return err
}

func (r *serviceRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM services WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *serviceRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Service, error) {
	query := `
		SELECT id, partner_id, name, description, price, duration, is_active, created_at, updated_at
		FROM services
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service := &models.Service{}
		if err := rows.Scan(&service.ID, &service.PartnerID, &service.Name, &service.Description, &service.Price, &service.Duration, &service.IsActive, &service.CreatedAt, &service.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

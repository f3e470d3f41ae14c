package repositories

import (
	"context"
	"time"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID, from, to time.Time) ([]*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Booking, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, partner_id, provider_id, service_id, user_id, booking_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.PartnerID, booking.ProviderID, booking.ServiceID, booking.UserID, booking.BookingDate, booking.Status)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, partner_id, provider_id, service_id, user_id, booking_date, status, created_at, updated_at
		FROM bookings
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&booking.ID, &booking.PartnerID, &booking.ProviderID, &booking.ServiceID, &booking.UserID, &booking.BookingDate, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE partner_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, status, partnerID, id)
	return err
}

func (r *bookingRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT id, partner_id, provider_id, service_id, user_id, booking_date, status, created_at, updated_at
		FROM bookings
		WHERE partner_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepo) ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID, from, to time.Time) ([]*models.Booking, error) {
	query := `
		SELECT id, partner_id, provider_id, service_id, user_id, booking_date, status, created_at, updated_at
		FROM bookings
		WHERE partner_id = $1 AND provider_id = $2 AND booking_date >= $3 AND booking_date < $4
		ORDER BY booking_date ASC
	`
	rows, err := r.db.Query(ctx, query, partnerID, providerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT id, partner_id, provider_id, service_id, user_id, booking_date, status, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for rows.Next() {
		booking := &models.Booking{}
		if err := rows.Scan(&booking.ID, &booking.PartnerID, &booking.ProviderID, &booking.ServiceID, &booking.UserID, &booking.BookingDate, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

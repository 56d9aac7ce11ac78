package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawBack/internal/models"
)

var (
	ErrRequestNotFound = errors.New("request not found")
)

type RequestRepository struct {
	DB *sql.DB
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error) {
	query := `
		INSERT INTO requests
			(requester_id, provider_id, service_type_id, listing_id, title, notes, status, scheduled_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		req.RequesterID, req.ProviderID, req.ServiceTypeID, req.ListingID,
		req.Title, req.Notes, req.Status, req.ScheduledDate, now,
	)
	if err != nil {
		return models.ServiceRequest{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.ServiceRequest{}, err
	}
	req.ID = int(id)
	req.CreatedAt = now
	return req, nil
}

func (r *RequestRepository) GetRequestByID(ctx context.Context, id int) (models.ServiceRequest, error) {
	query := `
		SELECT id, requester_id, provider_id, service_type_id, listing_id, title, notes,
		       status, scheduled_date, created_at, updated_at
		FROM requests
		WHERE id = ?
	`
	var req models.ServiceRequest
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.ProviderID, &req.ServiceTypeID, &req.ListingID,
		&req.Title, &req.Notes, &req.Status, &req.ScheduledDate, &req.CreatedAt, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.ServiceRequest{}, ErrRequestNotFound
	}
	if err != nil {
		return models.ServiceRequest{}, err
	}
	return req, nil
}

func (r *RequestRepository) GetRequestsWithFilters(ctx context.Context, filter models.RequestFilter) ([]models.ServiceRequest, error) {
	var (
		params     []interface{}
		conditions []string
	)

	baseQuery := `
		SELECT id, requester_id, provider_id, service_type_id, listing_id, title, notes,
		       status, scheduled_date, created_at, updated_at
		FROM requests
	`

	if len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Statuses)), ",")
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", placeholders))
		for _, s := range filter.Statuses {
			params = append(params, s)
		}
	}

	if filter.ServiceTypeID > 0 {
		conditions = append(conditions, "service_type_id = ?")
		params = append(params, filter.ServiceTypeID)
	}

	if filter.RequesterID > 0 {
		conditions = append(conditions, "requester_id = ?")
		params = append(params, filter.RequesterID)
	}

	if filter.ProviderID > 0 {
		conditions = append(conditions, "provider_id = ?")
		params = append(params, filter.ProviderID)
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, baseQuery, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		var req models.ServiceRequest
		if err := rows.Scan(
			&req.ID, &req.RequesterID, &req.ProviderID, &req.ServiceTypeID, &req.ListingID,
			&req.Title, &req.Notes, &req.Status, &req.ScheduledDate, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateRequestStatus writes the new status with optimistic validation: the
// row is only touched while it still holds the expected current status.
func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, id int, fromStatus, toStatus string) (models.ServiceRequest, error) {
	now := time.Now()
	result, err := r.DB.ExecContext(ctx,
		`UPDATE requests SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		toStatus, now, id, fromStatus,
	)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if rowsAffected == 0 {
		return models.ServiceRequest{}, ErrRequestNotFound
	}
	return r.GetRequestByID(ctx, id)
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawBack/internal/models"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository struct {
	DB *sql.DB
}

func (r *ListingRepository) CreateListing(ctx context.Context, l models.ServiceListing) (models.ServiceListing, error) {
	scheduleJSON, err := json.Marshal(l.Schedule)
	if err != nil {
		return models.ServiceListing{}, err
	}
	photosJSON, err := json.Marshal(l.Photos)
	if err != nil {
		return models.ServiceListing{}, err
	}

	query := `
		INSERT INTO listings
			(title, description, provider_id, service_type_id, price, latitude, longitude, schedule, photos, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		l.Title, l.Description, l.ProviderID, l.ServiceTypeID,
		l.Price, l.Latitude, l.Longitude, string(scheduleJSON), string(photosJSON), l.IsActive, now,
	)
	if err != nil {
		return models.ServiceListing{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.ServiceListing{}, err
	}
	l.ID = int(id)
	l.CreatedAt = now
	return l, nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id int) (models.ServiceListing, error) {
	query := `
		SELECT l.id, l.title, l.description, l.provider_id, l.service_type_id, l.price,
		       l.latitude, l.longitude, l.schedule, l.photos, l.is_active, l.created_at,
		       u.id, u.name, u.review_rating
		FROM listings l
		JOIN users u ON l.provider_id = u.id
		WHERE l.id = ?
	`
	row := r.DB.QueryRowContext(ctx, query, id)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return models.ServiceListing{}, ErrListingNotFound
	}
	if err != nil {
		return models.ServiceListing{}, err
	}
	return l, nil
}

// GetListingsWithFilters applies the filter conjunctively. Inactive listings
// are excluded unless includeInactive is set; geolocation filtering runs
// after the query using the haversine distance.
func (r *ListingRepository) GetListingsWithFilters(ctx context.Context, filter models.ListingFilter) ([]models.ServiceListing, error) {
	var (
		params     []interface{}
		conditions []string
	)

	baseQuery := `
		SELECT l.id, l.title, l.description, l.provider_id, l.service_type_id, l.price,
		       l.latitude, l.longitude, l.schedule, l.photos, l.is_active, l.created_at,
		       u.id, u.name, u.review_rating
		FROM listings l
		JOIN users u ON l.provider_id = u.id
	`

	if filter.ServiceTypeID > 0 {
		conditions = append(conditions, "l.service_type_id = ?")
		params = append(params, filter.ServiceTypeID)
	}

	if len(filter.ProviderIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.ProviderIDs)), ",")
		conditions = append(conditions, fmt.Sprintf("l.provider_id IN (%s)", placeholders))
		for _, id := range filter.ProviderIDs {
			params = append(params, id)
		}
	}

	if !filter.IncludeInactive {
		conditions = append(conditions, "l.is_active = TRUE")
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY l.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, baseQuery, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.ServiceListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		if filter.RadiusKM > 0 && !withinRadiusKm(filter.Latitude, filter.Longitude, l.Latitude, l.Longitude, filter.RadiusKM) {
			continue
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// UpdateListing writes only the supplied fields. provider_id is not part of
// the SET clause under any input.
func (r *ListingRepository) UpdateListing(ctx context.Context, id int, patch models.ListingUpdate) (models.ServiceListing, error) {
	var (
		sets   []string
		params []interface{}
	)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		params = append(params, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		params = append(params, *patch.Description)
	}
	if patch.ServiceTypeID != nil {
		sets = append(sets, "service_type_id = ?")
		params = append(params, *patch.ServiceTypeID)
	}
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		params = append(params, *patch.Price)
	}
	if patch.Latitude != nil {
		sets = append(sets, "latitude = ?")
		params = append(params, *patch.Latitude)
	}
	if patch.Longitude != nil {
		sets = append(sets, "longitude = ?")
		params = append(params, *patch.Longitude)
	}
	if patch.Schedule != nil {
		scheduleJSON, err := json.Marshal(patch.Schedule)
		if err != nil {
			return models.ServiceListing{}, err
		}
		sets = append(sets, "schedule = ?")
		params = append(params, string(scheduleJSON))
	}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		params = append(params, *patch.IsActive)
	}

	if len(sets) == 0 {
		return r.GetListingByID(ctx, id)
	}

	query := "UPDATE listings SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	params = append(params, id)

	result, err := r.DB.ExecContext(ctx, query, params...)
	if err != nil {
		return models.ServiceListing{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.ServiceListing{}, err
	}
	if rowsAffected == 0 {
		if _, err := r.GetListingByID(ctx, id); err != nil {
			return models.ServiceListing{}, err
		}
	}
	return r.GetListingByID(ctx, id)
}

// SoftDeleteListing pauses a listing. The row stays queryable by its owner.
func (r *ListingRepository) SoftDeleteListing(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE listings SET is_active = FALSE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if _, err := r.GetListingByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *ListingRepository) HardDeleteListing(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (models.ServiceListing, error) {
	var (
		l            models.ServiceListing
		scheduleJSON string
		photosJSON   sql.NullString
	)
	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.ProviderID, &l.ServiceTypeID, &l.Price,
		&l.Latitude, &l.Longitude, &scheduleJSON, &photosJSON, &l.IsActive, &l.CreatedAt,
		&l.Provider.ID, &l.Provider.Name, &l.Provider.Rating,
	)
	if err != nil {
		return models.ServiceListing{}, err
	}
	if scheduleJSON != "" {
		if err := json.Unmarshal([]byte(scheduleJSON), &l.Schedule); err != nil {
			return models.ServiceListing{}, &models.MalformedResponseError{Table: "listings", Err: err}
		}
	}
	if photosJSON.Valid && photosJSON.String != "" {
		if err := json.Unmarshal([]byte(photosJSON.String), &l.Photos); err != nil {
			return models.ServiceListing{}, &models.MalformedResponseError{Table: "listings", Err: err}
		}
	}
	return l, nil
}

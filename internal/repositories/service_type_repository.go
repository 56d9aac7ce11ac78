package repositories

import (
	"context"
	"database/sql"

	"pawBack/internal/models"
)

type ServiceTypeRepository struct {
	DB *sql.DB
}

func (r *ServiceTypeRepository) GetServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	query := `
		SELECT id, name, icon, credits, description
		FROM service_types
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.ServiceType
	for rows.Next() {
		var st models.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Icon, &st.Credits, &st.Description); err != nil {
			return nil, err
		}
		types = append(types, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

func (r *ServiceTypeRepository) GetServiceTypeByID(ctx context.Context, id int) (models.ServiceType, error) {
	query := `SELECT id, name, icon, credits, description FROM service_types WHERE id = ?`
	var st models.ServiceType
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&st.ID, &st.Name, &st.Icon, &st.Credits, &st.Description)
	if err == sql.ErrNoRows {
		return models.ServiceType{}, models.ErrServiceTypeNotFound
	}
	if err != nil {
		return models.ServiceType{}, err
	}
	return st, nil
}

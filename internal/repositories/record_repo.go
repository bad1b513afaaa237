package repositories

import (
	"context"

	"bizforge/internal/models"

	"github.com/google/uuid"
)

// RecordRepository is the generic record store: schema-less payloads keyed
// by organization and resource type. It performs no schema validation by
// design; persistence is its only job.
type RecordRepository interface {
	Create(ctx context.Context, record *models.Record) error
	Query(ctx context.Context, organizationID uuid.UUID, resourceType string) ([]*models.Record, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	CountByType(ctx context.Context, organizationID uuid.UUID) (map[string]int64, error)
}

type recordRepo struct {
	db Database
}

func NewRecordRepo(db Database) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, record *models.Record) error {
	query := `
		INSERT INTO records (id, organization_id, resource_type, data, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.OrganizationID, record.ResourceType, record.Data)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *recordRepo) Query(ctx context.Context, organizationID uuid.UUID, resourceType string) ([]*models.Record, error) {
	query := `
		SELECT id, organization_id, resource_type, data, created_at
		FROM records
		WHERE organization_id = $1 AND resource_type = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, organizationID, resourceType)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		record := &models.Record{}
		if err := rows.Scan(&record.ID, &record.OrganizationID, &record.ResourceType, &record.Data, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteByID deletes a record by id alone. It does not check that the
// caller owns the record's organization; that gap is inherited from the
// access layer contract and documented there.
func (r *recordRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM records WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

// CountByType returns record counts grouped by resource type for one
// organization. Used by the orphan audit and stats refresh jobs.
func (r *recordRepo) CountByType(ctx context.Context, organizationID uuid.UUID) (map[string]int64, error) {
	query := `
		SELECT resource_type, COUNT(*)
		FROM records
		WHERE organization_id = $1
		GROUP BY resource_type
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var resourceType string
		var count int64
		if err := rows.Scan(&resourceType, &count); err != nil {
			return nil, err
		}
		counts[resourceType] = count
	}
	return counts, rows.Err()
}

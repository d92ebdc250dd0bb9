// ABOUTME: Activity database operations
// ABOUTME: Handles activity CRUD and per-customer activity queries
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/harperreed/salescrm/models"
)

const activityColumns = `id, customer_id, type, subject, description, due_date, status, priority, assigned_to, created_at, updated_at`

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func scanActivity(row rowScanner, a *models.Activity) error {
	return row.Scan(
		&a.ID,
		&a.CustomerID,
		nullText{&a.Type},
		&a.Subject,
		nullText{&a.Description},
		nullText{&a.DueDate},
		nullText{&a.Status},
		nullText{&a.Priority},
		nullText{&a.AssignedTo},
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *ActivityRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := scanActivity(rows, &a); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

func (r *ActivityRepository) List(ctx context.Context) ([]models.Activity, error) {
	return r.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		ORDER BY created_at DESC, id DESC
	`)
}

func (r *ActivityRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Activity, error) {
	return r.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE customer_id = ?
		ORDER BY created_at DESC, id DESC
	`, customerID)
}

// CountCompletedSince counts the customer's completed activities created at or after since.
func (r *ActivityRepository) CountCompletedSince(ctx context.Context, customerID int64, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM activities
		WHERE customer_id = ? AND status = ? AND created_at >= ?
	`, customerID, models.ActivityCompleted, since.UTC()).Scan(&n)
	return n, err
}

func (r *ActivityRepository) Get(ctx context.Context, id int64) (*models.Activity, error) {
	a := &models.Activity{}
	err := scanActivity(r.db.QueryRowContext(ctx, `
		SELECT `+activityColumns+`
		FROM activities WHERE id = ?
	`, id), a)

	if err == sql.ErrNoRows {
		return nil, notFound("Activity")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) (int64, error) {
	if a == nil {
		return 0, models.NewValidationError("activity is required")
	}
	if err := a.Validate(); err != nil {
		return 0, err
	}
	a.ApplyDefaults()

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (customer_id, type, subject, description, due_date, status, priority, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.CustomerID, nullString(a.Type), a.Subject, nullString(a.Description), nullString(a.DueDate),
		a.Status, a.Priority, nullString(a.AssignedTo), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return 0, classifyWriteError(err)
	}

	a.ID, err = result.LastInsertId()
	return a.ID, err
}

func (r *ActivityRepository) Update(ctx context.Context, id int64, a *models.Activity) error {
	if a == nil {
		return models.NewValidationError("activity is required")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE activities
		SET customer_id = ?, type = ?, subject = ?, description = ?, due_date = ?, status = ?,
		    priority = ?, assigned_to = ?, updated_at = ?
		WHERE id = ?
	`, a.CustomerID, nullString(a.Type), a.Subject, nullString(a.Description), nullString(a.DueDate),
		nullString(a.Status), nullString(a.Priority), nullString(a.AssignedTo), a.UpdatedAt, id)
	if err != nil {
		return classifyWriteError(err)
	}

	return expectAffected(result, "Activity")
}

func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "Activity")
}

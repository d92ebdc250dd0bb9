// ABOUTME: Deal database operations
// ABOUTME: Handles deal CRUD, per-customer listing, and customer-joined deal queries
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/harperreed/salescrm/models"
)

const dealColumns = `d.id, d.customer_id, d.title, d.description, d.value, d.stage, d.probability, d.expected_close_date, d.owner, d.created_at, d.updated_at`

type DealRepository struct {
	db DBTX
}

func NewDealRepository(db DBTX) *DealRepository {
	return &DealRepository{db: db}
}

func dealDest(d *models.Deal) []interface{} {
	return []interface{}{
		&d.ID,
		&d.CustomerID,
		&d.Title,
		nullText{&d.Description},
		nullReal{&d.Value},
		nullText{&d.Stage},
		nullInt{&d.Probability},
		nullText{&d.ExpectedCloseDate},
		nullText{&d.Owner},
		&d.CreatedAt,
		&d.UpdatedAt,
	}
}

func (r *DealRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Deal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	deals := make([]models.Deal, 0)
	for rows.Next() {
		var d models.Deal
		if err := rows.Scan(dealDest(&d)...); err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

func (r *DealRepository) List(ctx context.Context) ([]models.Deal, error) {
	return r.query(ctx, `
		SELECT `+dealColumns+`
		FROM deals d
		ORDER BY d.created_at DESC, d.id DESC
	`)
}

func (r *DealRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Deal, error) {
	return r.query(ctx, `
		SELECT `+dealColumns+`
		FROM deals d
		WHERE d.customer_id = ?
		ORDER BY d.created_at DESC, d.id DESC
	`, customerID)
}

// ListRecentByCustomer returns at most limit deals for the customer, newest first.
func (r *DealRepository) ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]models.Deal, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.query(ctx, `
		SELECT `+dealColumns+`
		FROM deals d
		WHERE d.customer_id = ?
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT ?
	`, customerID, limit)
}

func (r *DealRepository) Get(ctx context.Context, id int64) (*models.Deal, error) {
	d := &models.Deal{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+dealColumns+`
		FROM deals d WHERE d.id = ?
	`, id).Scan(dealDest(d)...)

	if err == sql.ErrNoRows {
		return nil, notFound("Deal")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealRepository) queryWithCustomer(ctx context.Context, query string, args ...interface{}) ([]models.DealWithCustomer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	deals := make([]models.DealWithCustomer, 0)
	for rows.Next() {
		var d models.DealWithCustomer
		dest := append(dealDest(&d.Deal), nullText{&d.CustomerName})
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

// ListWithCustomer returns every deal joined with its customer's name,
// ordered by probability ascending then value descending.
func (r *DealRepository) ListWithCustomer(ctx context.Context) ([]models.DealWithCustomer, error) {
	return r.queryWithCustomer(ctx, `
		SELECT `+dealColumns+`, c.name
		FROM deals d
		LEFT JOIN customers c ON d.customer_id = c.id
		ORDER BY d.probability ASC, d.value DESC, d.id ASC
	`)
}

// ListUpdatedBetween returns deals whose updated_at falls in [start, end],
// most recently updated first.
func (r *DealRepository) ListUpdatedBetween(ctx context.Context, start, end time.Time) ([]models.DealWithCustomer, error) {
	return r.queryWithCustomer(ctx, `
		SELECT `+dealColumns+`, c.name
		FROM deals d
		LEFT JOIN customers c ON d.customer_id = c.id
		WHERE d.updated_at BETWEEN ? AND ?
		ORDER BY d.updated_at DESC, d.id DESC
	`, start.UTC(), end.UTC())
}

// GetWithCustomer returns one deal joined with its customer's name.
func (r *DealRepository) GetWithCustomer(ctx context.Context, id int64) (*models.DealWithCustomer, error) {
	deals, err := r.queryWithCustomer(ctx, `
		SELECT `+dealColumns+`, c.name
		FROM deals d
		LEFT JOIN customers c ON d.customer_id = c.id
		WHERE d.id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(deals) == 0 {
		return nil, notFound("Deal")
	}
	return &deals[0], nil
}

func (r *DealRepository) Create(ctx context.Context, d *models.Deal) (int64, error) {
	if d == nil {
		return 0, models.NewValidationError("deal is required")
	}
	if err := d.Validate(); err != nil {
		return 0, err
	}
	d.ApplyDefaults()

	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO deals (customer_id, title, description, value, stage, probability, expected_close_date, owner, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.CustomerID, d.Title, nullString(d.Description), d.Value, d.Stage, d.Probability,
		nullString(d.ExpectedCloseDate), nullString(d.Owner), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return 0, classifyWriteError(err)
	}

	d.ID, err = result.LastInsertId()
	return d.ID, err
}

func (r *DealRepository) Update(ctx context.Context, id int64, d *models.Deal) error {
	if d == nil {
		return models.NewValidationError("deal is required")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	d.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE deals
		SET customer_id = ?, title = ?, description = ?, value = ?, stage = ?, probability = ?,
		    expected_close_date = ?, owner = ?, updated_at = ?
		WHERE id = ?
	`, d.CustomerID, d.Title, nullString(d.Description), d.Value, nullString(d.Stage), d.Probability,
		nullString(d.ExpectedCloseDate), nullString(d.Owner), d.UpdatedAt, id)
	if err != nil {
		return classifyWriteError(err)
	}

	return expectAffected(result, "Deal")
}

func (r *DealRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "Deal")
}

// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD and per-customer listing of contacts
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/harperreed/salescrm/models"
)

const contactColumns = `id, customer_id, first_name, last_name, email, phone, position, department, created_at, updated_at`

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContact(row rowScanner, c *models.Contact) error {
	return row.Scan(
		&c.ID,
		&c.CustomerID,
		&c.FirstName,
		&c.LastName,
		nullText{&c.Email},
		nullText{&c.Phone},
		nullText{&c.Position},
		nullText{&c.Department},
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

func (r *ContactRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	return r.query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		ORDER BY created_at DESC, id DESC
	`)
}

func (r *ContactRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Contact, error) {
	return r.query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE customer_id = ?
		ORDER BY created_at DESC, id DESC
	`, customerID)
}

func (r *ContactRepository) Get(ctx context.Context, id int64) (*models.Contact, error) {
	c := &models.Contact{}
	err := scanContact(r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts WHERE id = ?
	`, id), c)

	if err == sql.ErrNoRows {
		return nil, notFound("Contact")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) (int64, error) {
	if c == nil {
		return 0, models.NewValidationError("contact is required")
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (customer_id, first_name, last_name, email, phone, position, department, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.CustomerID, c.FirstName, c.LastName, nullString(c.Email), nullString(c.Phone),
		nullString(c.Position), nullString(c.Department), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return 0, classifyWriteError(err)
	}

	c.ID, err = result.LastInsertId()
	return c.ID, err
}

func (r *ContactRepository) Update(ctx context.Context, id int64, c *models.Contact) error {
	if c == nil {
		return models.NewValidationError("contact is required")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE contacts
		SET customer_id = ?, first_name = ?, last_name = ?, email = ?, phone = ?, position = ?, department = ?, updated_at = ?
		WHERE id = ?
	`, c.CustomerID, c.FirstName, c.LastName, nullString(c.Email), nullString(c.Phone),
		nullString(c.Position), nullString(c.Department), c.UpdatedAt, id)
	if err != nil {
		return classifyWriteError(err)
	}

	return expectAffected(result, "Contact")
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "Contact")
}

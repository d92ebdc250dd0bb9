// ABOUTME: Customer database operations
// ABOUTME: Handles CRUD plus the composite customer-with-children read
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/salescrm/models"
	"golang.org/x/sync/errgroup"
)

const customerColumns = `id, name, email, phone, company, industry, address, city, state, zipcode, country, status, created_at, updated_at`

// CustomerRepository provides CRUD operations for customers.
type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row rowScanner, c *models.Customer) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		nullText{&c.Email},
		nullText{&c.Phone},
		nullText{&c.Company},
		nullText{&c.Industry},
		nullText{&c.Address},
		nullText{&c.City},
		nullText{&c.State},
		nullText{&c.Zipcode},
		nullText{&c.Country},
		nullText{&c.Status},
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// List returns all customers, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (*models.Customer, error) {
	c := &models.Customer{}
	err := scanCustomer(r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers WHERE id = ?
	`, id), c)

	if err == sql.ErrNoRows {
		return nil, notFound("Customer")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetDetail returns the customer with its contacts, deals, and activities.
// Child lookups run concurrently; any failure fails the whole read.
func (r *CustomerRepository) GetDetail(ctx context.Context, id int64) (*models.CustomerDetail, error) {
	customer, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.CustomerDetail{Customer: *customer}
	contacts := NewContactRepository(r.db)
	deals := NewDealRepository(r.db)
	activities := NewActivityRepository(r.db)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Contacts, err = contacts.ListByCustomer(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load contacts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		detail.Deals, err = deals.ListByCustomer(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load deals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		detail.Activities, err = activities.ListByCustomer(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load activities: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// Create validates and inserts a customer, returning the new id.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) (int64, error) {
	if c == nil {
		return 0, models.NewValidationError("customer is required")
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	c.ApplyDefaults()

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (name, email, phone, company, industry, address, city, state, zipcode, country, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Name, nullString(c.Email), nullString(c.Phone), nullString(c.Company), nullString(c.Industry),
		nullString(c.Address), nullString(c.City), nullString(c.State), nullString(c.Zipcode),
		nullString(c.Country), c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return 0, classifyWriteError(err)
	}

	c.ID, err = result.LastInsertId()
	return c.ID, err
}

// Update replaces every updatable column of the customer.
func (r *CustomerRepository) Update(ctx context.Context, id int64, c *models.Customer) error {
	if c == nil {
		return models.NewValidationError("customer is required")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = ?, email = ?, phone = ?, company = ?, industry = ?, address = ?,
		    city = ?, state = ?, zipcode = ?, country = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, nullString(c.Email), nullString(c.Phone), nullString(c.Company), nullString(c.Industry),
		nullString(c.Address), nullString(c.City), nullString(c.State), nullString(c.Zipcode),
		nullString(c.Country), nullString(c.Status), c.UpdatedAt, id)
	if err != nil {
		return classifyWriteError(err)
	}

	return expectAffected(result, "Customer")
}

// Delete removes the customer; contacts, deals, and activities cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "Customer")
}

// Count returns the number of customers.
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

func expectAffected(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound(entity)
	}
	return nil
}

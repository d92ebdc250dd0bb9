// ABOUTME: Database schema definitions
// ABOUTME: Creates the customers, contacts, deals, and activities tables on first run
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT UNIQUE,
	phone TEXT,
	company TEXT,
	industry TEXT,
	address TEXT,
	city TEXT,
	state TEXT,
	zipcode TEXT,
	country TEXT,
	status TEXT DEFAULT 'active',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers(created_at DESC);

CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	position TEXT,
	department TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contacts_customer_id ON contacts(customer_id);

CREATE TABLE IF NOT EXISTS deals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	value REAL,
	stage TEXT DEFAULT 'prospecting',
	probability INTEGER DEFAULT 0,
	expected_close_date TEXT,
	owner TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_deals_customer_id ON deals(customer_id);
CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage);
CREATE INDEX IF NOT EXISTS idx_deals_updated_at ON deals(updated_at);

CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL,
	type TEXT,
	subject TEXT NOT NULL,
	description TEXT,
	due_date TEXT,
	status TEXT DEFAULT 'pending',
	priority TEXT DEFAULT 'medium',
	assigned_to TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_customer_id ON activities(customer_id);
CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

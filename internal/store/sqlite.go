package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"contactsearch/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	mobile_phone  TEXT NOT NULL DEFAULT '',
	billing_city  TEXT NOT NULL DEFAULT '',
	billing_state TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);
CREATE TABLE IF NOT EXISTS cases (
	id         TEXT PRIMARY KEY,
	subject    TEXT NOT NULL DEFAULT '',
	contact_id TEXT NOT NULL REFERENCES contacts(id)
);
CREATE INDEX IF NOT EXISTS idx_cases_contact ON cases(contact_id);
`

// SQLiteStore is a Store backed by a SQLite database
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

// OpenSQLite opens (and creates if needed) the database at path.
// ":memory:" opens a private in-memory database.
func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	o := buildOptions(opts)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases and connection pragmas consistent
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	o.log.Debug("opened sqlite store", zap.String("path", path))
	return &SQLiteStore{db: db, opts: o}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SearchContacts returns contacts whose name contains keyword, ignoring case
func (s *SQLiteStore) SearchContacts(ctx context.Context, keyword string) ([]domain.ContactRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, mobile_phone, billing_city, billing_state
		   FROM contacts
		  WHERE name LIKE ? ESCAPE '\'
		  ORDER BY name, id`,
		"%"+escapeLike(keyword)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.ContactRow
	for rows.Next() {
		var r domain.ContactRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.MobilePhone, &r.BillingCity, &r.BillingState); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	return out, nil
}

// GetRecord returns the requested fields of a contact. No fields means all.
func (s *SQLiteStore) GetRecord(ctx context.Context, id string, fields []string) (domain.Record, error) {
	var r domain.ContactRow
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, mobile_phone, billing_city, billing_state FROM contacts WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.Email, &r.MobilePhone, &r.BillingCity, &r.BillingState)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact %s: %w", id, err)
	}
	return r.Fields().Only(fields), nil
}

// DeleteRecord removes a contact unless a case references it
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	var cases int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases WHERE contact_id = ?`, id).Scan(&cases); err != nil {
		return fmt.Errorf("failed to count cases: %w", err)
	}
	if cases > 0 {
		return fmt.Errorf("contact %s has %d case(s): %w", id, cases, ErrAssociatedWithCase)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("contact %s: %w", id, ErrAssociatedWithCase)
		}
		return fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	s.opts.log.Info("contact deleted", zap.String("id", id))
	s.opts.publish(domain.RecordDeletedEvent{ObjectName: domain.ContactObject, RecordID: id})
	return nil
}

// CreateRecord inserts a contact. A record without an Id gets a new one.
func (s *SQLiteStore) CreateRecord(ctx context.Context, rec domain.Record) (string, error) {
	row := domain.RowFromRecord(rec)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, email, mobile_phone, billing_city, billing_state) VALUES (?, ?, ?, ?, ?, ?)`,
		row.ID, row.Name, row.Email, row.MobilePhone, row.BillingCity, row.BillingState)
	if err != nil {
		return "", fmt.Errorf("failed to create contact: %w", err)
	}

	s.opts.log.Info("contact created", zap.String("id", row.ID))
	s.opts.publish(domain.RecordCreatedEvent{ObjectName: domain.ContactObject, RecordID: row.ID})
	return row.ID, nil
}

// UpdateRecord writes the contact fields present in rec
func (s *SQLiteStore) UpdateRecord(ctx context.Context, id string, rec domain.Record) error {
	fields := writtenFields(rec)
	if len(fields) == 0 {
		if _, err := s.GetRecord(ctx, id, nil); err != nil {
			return err
		}
		return nil
	}

	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		sets[i] = columns[f] + " = ?"
		args = append(args, rec[f])
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, `UPDATE contacts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}

	s.opts.log.Info("contact updated", zap.String("id", id), zap.Strings("fields", fields))
	s.opts.publish(domain.RecordUpdatedEvent{ObjectName: domain.ContactObject, RecordID: id, Fields: fields})
	return nil
}

// AddCase inserts a case referencing an existing contact
func (s *SQLiteStore) AddCase(ctx context.Context, c domain.Case) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO cases (id, subject, contact_id) VALUES (?, ?, ?)`, c.ID, c.Subject, c.ContactID)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return "", fmt.Errorf("case contact %s: %w", c.ContactID, ErrNotFound)
		}
		return "", fmt.Errorf("failed to add case: %w", err)
	}
	return c.ID, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

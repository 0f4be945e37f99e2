// Package sqlite stores per-user values in a local SQLite file.
// It suits single-user deployments where running PostgreSQL is overkill.
package sqlite

import (
	"database/sql"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// StorageRepo implements repository.KeyValueStore
type StorageRepo struct {
	db *sql.DB
}

// NewStorageRepo creates a new storage repository
func NewStorageRepo(db *sql.DB) *StorageRepo {
	return &StorageRepo{db: db}
}

// Open opens the database file and limits the pool to one writer
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Get returns the value stored under key, ok is false if absent
func (r *StorageRepo) Get(userID int64, key string) (string, bool, error) {
	var value string

	query := `SELECT value FROM storage WHERE user_id = ? AND key = ?`
	err := r.db.QueryRow(query, userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (r *StorageRepo) Set(userID int64, key, value string) error {
	query := `
		INSERT INTO storage (user_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.Exec(query, userID, key, value)
	return err
}

// Delete removes key
func (r *StorageRepo) Delete(userID int64, key string) error {
	_, err := r.db.Exec(`DELETE FROM storage WHERE user_id = ? AND key = ?`, userID, key)
	return err
}

package postgres

import (
	"database/sql"
)

// StorageRepo implements repository.KeyValueStore
type StorageRepo struct {
	db *sql.DB
}

// NewStorageRepo creates a new storage repository
func NewStorageRepo(db *sql.DB) *StorageRepo {
	return &StorageRepo{db: db}
}

// Get returns the value stored under key, ok is false if absent
func (r *StorageRepo) Get(userID int64, key string) (string, bool, error) {
	var value string

	query := `SELECT value FROM storage WHERE user_id = $1 AND key = $2`
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
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.db.Exec(query, userID, key, value)
	return err
}

// Delete removes key, deleting a missing key is not an error
func (r *StorageRepo) Delete(userID int64, key string) error {
	query := `DELETE FROM storage WHERE user_id = $1 AND key = $2`
	_, err := r.db.Exec(query, userID, key)
	return err
}

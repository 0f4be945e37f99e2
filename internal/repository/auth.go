package repository

const authTrue = "true"

// AuthRepo implements AuthRepository on top of a KeyValueStore
type AuthRepo struct {
	kv KeyValueStore
}

// NewAuthRepo creates a new auth repository
func NewAuthRepo(kv KeyValueStore) *AuthRepo {
	return &AuthRepo{kv: kv}
}

// IsAuthenticated reports whether the stored flag is exactly "true"
func (r *AuthRepo) IsAuthenticated(userID int64) (bool, error) {
	value, ok, err := r.kv.Get(userID, KeyAuth)
	if err != nil {
		return false, err
	}
	return ok && value == authTrue, nil
}

// SetAuthenticated stores the flag
func (r *AuthRepo) SetAuthenticated(userID int64) error {
	return r.kv.Set(userID, KeyAuth, authTrue)
}

// ClearAuthenticated removes the flag
func (r *AuthRepo) ClearAuthenticated(userID int64) error {
	return r.kv.Delete(userID, KeyAuth)
}

// Package auth implements single-admin authentication: one bootstrap
// admin account, bcrypt-hashed credentials, and bearer tokens for the
// HTTP surface.
package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Admin is the dashboard operator account.
type Admin struct {
	ID           id.ID     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// SetPassword hashes and stores the password.
func (a *Admin) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (a *Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

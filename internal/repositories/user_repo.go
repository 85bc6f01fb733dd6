package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, fmt.Errorf("id tidak valid")
	}
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, username, email, COALESCE(phone,''), role, status,
			COALESCE(total_bookings,0)
		FROM users WHERE id=? LIMIT 1`, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status,
		&u.TotalBookings,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// GetByLogin resolves a user plus password hash by email or username.
func (r UserRepo) GetByLogin(login string) (models.User, string, error) {
	login = strings.TrimSpace(login)
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, username, email, COALESCE(phone,''), password_hash,
			role, status, COALESCE(total_bookings,0)
		FROM users
		WHERE email=? OR username=? LIMIT 1`, login, login).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &hash,
		&u.Role, &u.Status, &u.TotalBookings,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	return u, hash, err
}

func (r UserRepo) Exists(email, username string) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email=? OR username=?`,
		email, username).Scan(&n)
	return n > 0, err
}

func (r UserRepo) Insert(name, username, email, phone, passwordHash, role string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users
			(name, username, email, phone, password_hash, role, status,
			 total_bookings, created_at, updated_at)
		VALUES (?,?,?,?,?,?,'active',0,NOW(),NOW())`,
		strings.TrimSpace(name), strings.TrimSpace(username),
		strings.TrimSpace(email), strings.TrimSpace(phone), passwordHash, role,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IncrementTotalBookings bumps the lifetime counter inside the booking tx.
func (r UserRepo) IncrementTotalBookings(q intdb.Queryer, userID int64) error {
	_, err := q.Exec(`
		UPDATE users SET total_bookings = COALESCE(total_bookings,0) + 1,
			updated_at=NOW()
		WHERE id=?`, userID)
	return err
}

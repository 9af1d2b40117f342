package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an update or delete matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when the unique username constraint fails.
	ErrUsernameTaken = errors.New("username already exists")
)

// DBProvider hands out the shared store connection.
// *database.Handle satisfies it.
type DBProvider interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// affected maps a finished write to ErrNotFound when it touched nothing.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	_ UserRepository         = (*GormUserRepository)(nil)
	_ TeamRepository         = (*GormTeamRepository)(nil)
	_ RegistrationRepository = (*GormRegistrationRepository)(nil)
)

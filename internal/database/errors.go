package database

import (
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/pkg/errors"
)

const duplicateKeyErrorCode = "23505"

// WrapError translates a gorm/driver error into the ledger error taxonomy.
func WrapError(err error) error {
	var pgErr *pgconn.PgError

	if err == nil {
		return nil
	} else if _, ok := err.(*errors.Error); ok {
		return err
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound
	} else if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case duplicateKeyErrorCode:
			return errors.Conflict.Explain("duplicate key").Wrap(err)
		}
	}

	return errors.Internal.Explain("store failure").Wrap(err)
}

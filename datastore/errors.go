package datastore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned by single-row reads that match nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers unique violations and deletes blocked by dependent rows.
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference is a write that points at a row which does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// writeKind tells classify whether a foreign key failure means the new row
// references something missing, or the deleted row is still referenced.
type writeKind int

const (
	writeUpsert writeKind = iota
	writeDelete
)

// classify tags driver-specific constraint errors with one of the package
// sentinels, keeping the driver error in the chain.
func classify(err error, kind writeKind) error {
	var sentinel error

	var myErr *mysql.MySQLError
	var pgErr *pq.Error
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &myErr):
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced:
			sentinel = ErrConflict
		case mysqlNoReferencedRow:
			sentinel = ErrInvalidReference
		}
	case errors.As(err, &pgErr):
		switch string(pgErr.Code) {
		case pgUniqueViolation:
			sentinel = ErrConflict
		case pgForeignKeyViolation:
			sentinel = fkSentinel(kind)
		}
	case errors.As(err, &liteErr):
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			sentinel = ErrConflict
		case sqlite3.ErrConstraintForeignKey:
			sentinel = fkSentinel(kind)
		}
	}

	if sentinel == nil {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func fkSentinel(kind writeKind) error {
	if kind == writeDelete {
		return ErrConflict
	}
	return ErrInvalidReference
}

// notFound normalizes sql.ErrNoRows into ErrNotFound.
func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", what, id, err)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// Package repository implements persistence for organizations, attractions,
// memberships and the platform super admin list on PostgreSQL and MySQL.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/lib/pq"

	apperrors "github.com/attractionops/platform/internal/errors"
)

const (
	postgresUniqueViolation pq.ErrorCode = "23505"
	mysqlDuplicateEntry     uint16       = 1062
)

func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation
}

func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// uuidColumn pairs a scanned BINARY(16) value with its destination.
type uuidColumn struct {
	raw []byte
	dst *uuid.UUID
}

func unmarshalUUIDs(columns ...uuidColumn) error {
	for _, c := range columns {
		if err := c.dst.UnmarshalBinary(c.raw); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal UUID")
		}
	}
	return nil
}

func marshalUUIDPair(a, b uuid.UUID) ([]byte, []byte, error) {
	aBytes, err := a.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	bBytes, err := b.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return aBytes, bBytes, nil
}

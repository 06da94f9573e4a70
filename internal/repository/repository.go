package repository

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// ErrDuplicate signals that an insert hit a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

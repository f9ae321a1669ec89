package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("repositories: document not found")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("repositories: duplicate key")

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

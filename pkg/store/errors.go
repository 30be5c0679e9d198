package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a named conversation has no file.
	ErrNotFound = errors.New("conversation not found")
	// ErrExists is returned when a write would replace an existing conversation.
	ErrExists = errors.New("conversation already exists")
	// ErrNotDirectory is returned when the save path exists but is not a directory.
	ErrNotDirectory = errors.New("save path is not a directory")
	// ErrInvalidName is returned for names that cannot map to a file in the save directory.
	ErrInvalidName = errors.New("invalid conversation name")
)

// StorageError describes a failed filesystem operation on the save directory.
// Use errors.Is with the sentinels above to tell the causes apart.
type StorageError struct {
	Op   string
	Name string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is, or wraps, a StorageError.
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

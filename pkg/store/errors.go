package store

import "errors"

var (
	// ErrDirectoryInit is returned when the entry directory cannot be created.
	ErrDirectoryInit = errors.New("store: directory init failed")
	// ErrStorageRead is returned when an entry is missing or unreadable.
	ErrStorageRead = errors.New("store: read failed")
	// ErrStorageWrite is returned when an entry cannot be written.
	ErrStorageWrite = errors.New("store: write failed")
	// ErrStorageDelete is returned when an entry cannot be removed.
	ErrStorageDelete = errors.New("store: delete failed")
)

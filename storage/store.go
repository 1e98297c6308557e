// Package storage implements the portal's record store: flat CSV tables with
// a header row of field names, one file per entity. Every operation is a
// read-full-table, mutate-in-memory, overwrite-full-table cycle guarded by an
// advisory file lock, so concurrent writers cannot silently discard each
// other's rows.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/gofrs/flock"
)

// ErrStoreCorrupt marks a table file that exists but cannot be parsed.
var ErrStoreCorrupt = errors.New("store file corrupt")

// Init makes sure the data folder exists.
func Init(dataFolder string) error {
	return os.MkdirAll(dataFolder, 0o750)
}

// Table is one CSV-backed table of T records. The csv struct tags of T fix
// the header names and column order on disk.
type Table[T any] struct {
	path string
}

func NewTable[T any](path string) *Table[T] {
	return &Table[T]{path: path}
}

func (t *Table[T]) Path() string {
	return t.path
}

// lock takes the advisory lock for this table, creating the parent folder
// when absent. Callers must Unlock.
func (t *Table[T]) lock() (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o750); err != nil {
		return nil, err
	}
	fl := flock.New(t.path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, err
	}
	return fl, nil
}

// Load returns all records in store order, or an empty slice when the table
// file does not exist yet.
func (t *Table[T]) Load() ([]T, error) {
	fl, err := t.lock()
	if err != nil {
		return nil, err
	}
	defer fl.Unlock()

	return t.read()
}

// Append adds one record at the end of the table.
func (t *Table[T]) Append(record T) error {
	fl, err := t.lock()
	if err != nil {
		return err
	}
	defer fl.Unlock()

	records, err := t.read()
	if err != nil {
		return err
	}
	records = append(records, record)
	return t.write(records)
}

// Update applies mutation to every record matching predicate and persists
// the full table. The predicate runs under the table lock, so a stale caller
// snapshot cannot cause a lost update: preconditions must be expressed in
// the predicate itself.
func (t *Table[T]) Update(predicate func(*T) bool, mutation func(*T)) (int, error) {
	fl, err := t.lock()
	if err != nil {
		return 0, err
	}
	defer fl.Unlock()

	records, err := t.read()
	if err != nil {
		return 0, err
	}

	matched := 0
	for i := range records {
		if predicate(&records[i]) {
			mutation(&records[i])
			matched++
		}
	}
	if matched == 0 {
		return 0, nil
	}
	return matched, t.write(records)
}

// Mutate applies fn to the full table and persists whatever it returns,
// holding the lock across the read and the write. Sequences that derive new
// state from current state, like id assignment or unique-key checks, must go
// through Mutate: a Load followed by an Append releases the lock in between.
// An error from fn aborts without touching the file.
func (t *Table[T]) Mutate(fn func(records []T) ([]T, error)) error {
	fl, err := t.lock()
	if err != nil {
		return err
	}
	defer fl.Unlock()

	records, err := t.read()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return t.write(records)
}

func (t *Table[T]) read() ([]T, error) {
	file, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []T
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreCorrupt, t.path, err)
	}
	return records, nil
}

// write rewrites the whole table through a temp file so a crash mid-write
// leaves the previous contents intact.
func (t *Table[T]) write(records []T) error {
	tmpPath := t.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&records, file); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, t.path)
}

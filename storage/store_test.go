package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fruit struct {
	Name  string `csv:"name"`
	Count int    `csv:"count"`
}

func newTestTable(t *testing.T) *Table[fruit] {
	return NewTable[fruit](filepath.Join(t.TempDir(), "fruits.csv"))
}

func TestLoadMissingTableIsEmpty(t *testing.T) {
	table := newTestTable(t)

	records, err := table.Load()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendAndLoad(t *testing.T) {
	table := newTestTable(t)

	assert.NoError(t, table.Append(fruit{Name: "apple", Count: 3}))
	assert.NoError(t, table.Append(fruit{Name: "pear", Count: 1}))

	records, err := table.Load()
	assert.NoError(t, err)
	assert.Equal(t, []fruit{{Name: "apple", Count: 3}, {Name: "pear", Count: 1}}, records)
}

func TestHeaderRowMatchesCsvTags(t *testing.T) {
	table := newTestTable(t)
	assert.NoError(t, table.Append(fruit{Name: "apple", Count: 3}))

	raw, err := os.ReadFile(table.Path())
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "name,count", lines[0])
}

func TestMutatePersistsReturnedRecords(t *testing.T) {
	table := newTestTable(t)
	assert.NoError(t, table.Append(fruit{Name: "apple", Count: 3}))

	err := table.Mutate(func(records []fruit) ([]fruit, error) {
		return append(records, fruit{Name: "pear", Count: len(records)}), nil
	})
	assert.NoError(t, err)

	records, err := table.Load()
	assert.NoError(t, err)
	assert.Equal(t, []fruit{{Name: "apple", Count: 3}, {Name: "pear", Count: 1}}, records)
}

func TestMutateErrorAbortsWithoutWriting(t *testing.T) {
	table := newTestTable(t)
	assert.NoError(t, table.Append(fruit{Name: "apple", Count: 3}))

	before, err := os.ReadFile(table.Path())
	assert.NoError(t, err)

	boom := errors.New("boom")
	err = table.Mutate(func(records []fruit) ([]fruit, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := os.ReadFile(table.Path())
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMutateSerializesConcurrentWriters(t *testing.T) {
	table := newTestTable(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := table.Mutate(func(records []fruit) ([]fruit, error) {
				next := 1
				for _, f := range records {
					if f.Count >= next {
						next = f.Count + 1
					}
				}
				return append(records, fruit{Name: "apple", Count: next}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := table.Load()
	assert.NoError(t, err)
	assert.Len(t, records, writers)
	seen := make(map[int]bool)
	for _, f := range records {
		assert.False(t, seen[f.Count], "counter %d persisted more than once", f.Count)
		seen[f.Count] = true
	}
}

func TestUpdateMutatesMatchingRecords(t *testing.T) {
	table := newTestTable(t)
	assert.NoError(t, table.Append(fruit{Name: "apple", Count: 3}))
	assert.NoError(t, table.Append(fruit{Name: "pear", Count: 1}))

	matched, err := table.Update(
		func(f *fruit) bool { return f.Name == "apple" },
		func(f *fruit) { f.Count = 10 })
	assert.NoError(t, err)
	assert.Equal(t, 1, matched)

	records, err := table.Load()
	assert.NoError(t, err)
	assert.Equal(t, 10, records[0].Count)
	assert.Equal(t, 1, records[1].Count)
}

func TestUpdateWithoutMatchLeavesTableAlone(t *testing.T) {
	table := newTestTable(t)
	assert.NoError(t, table.Append(fruit{Name: "apple", Count: 3}))

	before, err := os.ReadFile(table.Path())
	assert.NoError(t, err)

	matched, err := table.Update(
		func(f *fruit) bool { return f.Name == "kiwi" },
		func(f *fruit) { f.Count = 0 })
	assert.NoError(t, err)
	assert.Zero(t, matched)

	after, err := os.ReadFile(table.Path())
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCorruptTableSurfacesStoreCorrupt(t *testing.T) {
	table := newTestTable(t)
	err := os.WriteFile(table.Path(), []byte("name,count\n\"broken\n"), 0o640)
	assert.NoError(t, err)

	_, err = table.Load()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreCorrupt))
}

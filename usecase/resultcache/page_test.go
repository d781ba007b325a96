package resultcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmfmock/server/domain"
)

func intPtr(v int) *int { return &v }

func sampleRecords() []domain.Record {
	return []domain.Record{
		{"name": "C", "status": "ACTIVE"},
		{"name": "A", "status": "FROZEN"},
		{"name": "B", "status": "ACTIVE"},
		{"name": "A", "status": "ACTIVE"},
	}
}

func TestPage_SliceBounds(t *testing.T) {
	records := sampleRecords()

	page := Page(records, 1, intPtr(2), nil)
	require.Len(t, page, 2)
	assert.Equal(t, "C", page[0]["name"])
	assert.Equal(t, "A", page[1]["name"])

	// Past the end: empty, no error.
	assert.Empty(t, Page(records, 10, intPtr(2), nil))

	// Count over the end clips.
	assert.Len(t, Page(records, 3, intPtr(100), nil), 2)

	// Absent count reads to the end.
	assert.Len(t, Page(records, 2, nil, nil), 3)

	// Zero and negative index default to the first record.
	assert.Equal(t, "C", Page(records, 0, intPtr(1), nil)[0]["name"])
	assert.Equal(t, "C", Page(records, -5, intPtr(1), nil)[0]["name"])
}

func TestPage_SingleFieldOrdering(t *testing.T) {
	records := sampleRecords()

	page := Page(records, 1, nil, []string{"name"})
	require.Len(t, page, 4)
	for i := 1; i < len(page); i++ {
		assert.LessOrEqual(t, page[i-1]["name"], page[i]["name"])
	}

	// The stored order is untouched.
	assert.Equal(t, "C", records[0]["name"])
}

func TestPage_MultiFieldTieBreak(t *testing.T) {
	page := Page(sampleRecords(), 1, nil, []string{"name", "status"})
	require.Len(t, page, 4)

	// Both "A" records, tie broken on status.
	assert.Equal(t, "A", page[0]["name"])
	assert.Equal(t, "ACTIVE", page[0]["status"])
	assert.Equal(t, "A", page[1]["name"])
	assert.Equal(t, "FROZEN", page[1]["status"])
}

func TestPage_OrderingIsStable(t *testing.T) {
	records := []domain.Record{
		{"name": "X", "seq": "1"},
		{"name": "X", "seq": "2"},
		{"name": "X", "seq": "3"},
	}
	page := Page(records, 1, nil, []string{"name"})
	require.Len(t, page, 3)
	assert.Equal(t, "1", page[0]["seq"])
	assert.Equal(t, "2", page[1]["seq"])
	assert.Equal(t, "3", page[2]["seq"])
}

func TestPage_MissingFieldSortsAsEmpty(t *testing.T) {
	records := []domain.Record{
		{"name": "B", "extra": "x"},
		{"name": "A"},
	}
	page := Page(records, 1, nil, []string{"extra", "name"})
	require.Len(t, page, 2)
	// Record without "extra" compares as "" and sorts first.
	assert.Equal(t, "A", page[0]["name"])
}

func TestPage_LexicographicEvenForNumbers(t *testing.T) {
	records := []domain.Record{
		{"size": "9"},
		{"size": "10"},
		{"size": "100"},
	}
	page := Page(records, 1, nil, []string{"size"})
	require.Len(t, page, 3)
	assert.Equal(t, "10", page[0]["size"])
	assert.Equal(t, "100", page[1]["size"])
	assert.Equal(t, "9", page[2]["size"])
}

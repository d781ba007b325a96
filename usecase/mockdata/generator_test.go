package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zmfmock/server/domain"
)

func TestGenerate_Counts(t *testing.T) {
	g := New(1, zaptest.NewLogger(t))

	records, err := g.Generate(ResourceProgram, 20)
	require.NoError(t, err)
	assert.Len(t, records, 20)

	records, err = g.Generate(ResourcePackage, 0)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = g.Generate(ResourceDataset, -3)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGenerate_ProgramFields(t *testing.T) {
	g := New(1, zaptest.NewLogger(t))

	records, err := g.Generate("program", 3)
	require.NoError(t, err)

	for i, rec := range records {
		assert.NotEmpty(t, rec["name"])
		assert.NotEmpty(t, rec["language"])
		assert.NotEmpty(t, rec["status"])
		assert.NotEmpty(t, rec["compileDate"])
		if i > 0 {
			// Sequential member names.
			assert.Greater(t, rec["name"], records[i-1]["name"])
		}
	}
}

func TestGenerate_CaseInsensitiveResourceType(t *testing.T) {
	g := New(1, zaptest.NewLogger(t))

	records, err := g.Generate("Component", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGenerate_UnknownResource(t *testing.T) {
	g := New(1, zaptest.NewLogger(t))

	_, err := g.Generate("nonsense", 5)
	assert.ErrorIs(t, err, domain.ErrUnknownResource)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidParm))
}

func TestGenerate_Reproducible(t *testing.T) {
	a := New(42, zaptest.NewLogger(t))
	b := New(42, zaptest.NewLogger(t))

	ra, err := a.Generate(ResourceBaseline, 5)
	require.NoError(t, err)
	rb, err := b.Generate(ResourceBaseline, 5)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("program"))
	assert.True(t, Known("PACKAGE"))
	assert.False(t, Known("ResultCache"))
	assert.False(t, Known(""))
}

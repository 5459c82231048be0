package document

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileAt(batchID, kind string, at time.Time) *UploadedFile {
	f := NewUploadedFile(NewStorageKey(), "doc.pdf", 100, batchID, kind)
	f.CreatedAt = at
	return f
}

func TestGroupUploads(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("groups batch records and keeps legacy records as singletons", func(t *testing.T) {
		files := []*UploadedFile{
			fileAt("A", "bl", base.Add(1*time.Second)),
			fileAt("A", "invoice", base.Add(3*time.Second)),
			fileAt("A", "payment", base.Add(2*time.Second)),
			fileAt("", "", base.Add(-time.Hour)),
			fileAt("", "", base.Add(-2*time.Hour)),
		}

		groups := GroupUploads(files)

		require.Len(t, groups, 3)
		a := groups[0]
		assert.Equal(t, "A", a.ID)
		require.NotNil(t, a.BatchID)
		assert.Equal(t, "A", *a.BatchID)
		assert.True(t, a.Complete())
		assert.Equal(t, files[0], a.BL)
		assert.Equal(t, files[2], a.Payment)
		assert.Equal(t, files[1], a.Invoice)
		assert.Empty(t, a.Others)
		assert.Equal(t, base.Add(3*time.Second), a.CreatedAt)
		assert.Equal(t, int64(300), a.TotalSize())

		assert.Equal(t, files[3].ID.String(), groups[1].ID)
		assert.Nil(t, groups[1].BatchID)
		assert.Equal(t, files[4].ID.String(), groups[2].ID)
	})

	t.Run("orders groups by most recent record descending", func(t *testing.T) {
		old := fileAt("old", "bl", base)
		newer := fileAt("new", "bl", base.Add(time.Minute))
		lateInOld := fileAt("old", "invoice", base.Add(2*time.Minute))

		groups := GroupUploads([]*UploadedFile{old, newer, lateInOld})

		require.Len(t, groups, 2)
		assert.Equal(t, "old", groups[0].ID)
		assert.Equal(t, "new", groups[1].ID)
		for i := 1; i < len(groups); i++ {
			assert.False(t, groups[i].CreatedAt.After(groups[i-1].CreatedAt))
		}
	})

	t.Run("first upload of a kind keeps a duplicated slot", func(t *testing.T) {
		older := fileAt("B", "bl", base)
		newer := fileAt("B", "bl", base.Add(time.Second))

		for _, in := range [][]*UploadedFile{{older, newer}, {newer, older}} {
			groups := GroupUploads(in)

			require.Len(t, groups, 1)
			assert.Same(t, older, groups[0].BL)
			assert.Empty(t, groups[0].Others)
			assert.Equal(t, newer.CreatedAt, groups[0].CreatedAt)
		}
	})

	t.Run("unknown kinds are kept as extras", func(t *testing.T) {
		extra := fileAt("C", "packing-list", base)
		unset := fileAt("C", "", base.Add(time.Second))

		groups := GroupUploads([]*UploadedFile{extra, unset})

		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Others, 2)
		assert.False(t, groups[0].Complete())
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GroupUploads(nil))
	})
}

func TestNewBatchID(t *testing.T) {
	id := NewBatchID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewBatchID())
}

func TestFallbackBatchID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := fallbackBatchID(now)

	parts := strings.SplitN(id, "-", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "1700000000123", parts[0])
	assert.NotEmpty(t, parts[1])
}

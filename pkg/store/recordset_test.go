package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xfollow/pkg/models"
)

func TestRecordSetFirstWriteWins(t *testing.T) {
	set := NewRecordSet()

	assert.True(t, set.PutIfAbsent(models.UserRecord{Handle: "a", DisplayName: "A"}))
	assert.False(t, set.PutIfAbsent(models.UserRecord{Handle: "a", DisplayName: "B", IsVerified: true}))

	rec, ok := set.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", rec.DisplayName)
	assert.False(t, rec.IsVerified)
	assert.Equal(t, 1, set.Len())
}

func TestRecordSetInsertionOrder(t *testing.T) {
	set := NewRecordSet()
	for _, h := range []string{"zed", "amy", "kim", "amy"} {
		set.PutIfAbsent(models.UserRecord{Handle: h, DisplayName: h})
	}

	var handles []string
	set.Each(func(rec models.UserRecord) {
		handles = append(handles, rec.Handle)
	})
	assert.Equal(t, []string{"zed", "amy", "kim"}, handles)
}

func TestRecordSetClear(t *testing.T) {
	set := NewRecordSet()
	set.PutIfAbsent(models.UserRecord{Handle: "a"})
	set.PutIfAbsent(models.UserRecord{Handle: "b"})

	set.Clear()
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Has("a"))
	assert.Empty(t, set.Records())

	assert.True(t, set.PutIfAbsent(models.UserRecord{Handle: "a"}))
	assert.Equal(t, []models.UserRecord{{Handle: "a"}}, set.Records())
}

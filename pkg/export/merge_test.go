package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "xfollow/pkg/errors"
)

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestMergeIntoFirstWriteWins(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts.json")
	recovery := filepath.Join(dir, DefaultFileName)

	writeJSON(t, posts, `[
		{"postId": "p1", "authorHandle": "a", "authorName": "Old A", "isFollowed": true, "extra": 7},
		{"postId": "p2", "authorHandle": "b", "isFollowed": false}
	]`)
	writeJSON(t, recovery, `[
		{"postId": "recovered_a", "authorHandle": "a", "authorName": "New A", "isFollowed": true},
		{"postId": "recovered_c", "authorHandle": "c", "authorName": "C", "isFollowed": true}
	]`)

	report, err := MergeInto(posts, recovery)
	require.NoError(t, err)
	assert.Equal(t, MergeReport{Existing: 2, Incoming: 2, Added: 1, Total: 3, Followed: 2}, report)

	data, err := os.ReadFile(posts)
	require.NoError(t, err)

	var merged []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &merged))
	require.Len(t, merged, 3)
	assert.Equal(t, "Old A", merged[0]["authorName"])
	assert.Equal(t, float64(7), merged[0]["extra"])
	assert.Equal(t, "c", merged[2]["authorHandle"])
	assert.Contains(t, string(data), "\n    {\n        \"postId\": \"p1\"")
}

func TestMergeIntoMissingPosts(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "data", "posts.json")
	recovery := filepath.Join(dir, DefaultFileName)
	writeJSON(t, recovery, `[{"authorHandle": "z", "isFollowed": true}]`)

	report, err := MergeInto(posts, recovery)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Existing)
	assert.Equal(t, 1, report.Added)
	assert.FileExists(t, posts)
}

func TestMergeIntoIdempotent(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts.json")
	recovery := filepath.Join(dir, DefaultFileName)
	writeJSON(t, recovery, `[{"authorHandle": "z", "isFollowed": true}]`)

	_, err := MergeInto(posts, recovery)
	require.NoError(t, err)
	report, err := MergeInto(posts, recovery)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Added)
	assert.Equal(t, 1, report.Total)
}

func TestMergeIntoErrors(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts.json")

	_, err := MergeInto(posts, filepath.Join(dir, "missing.json"))
	assert.True(t, xerrors.IsType(err, xerrors.ErrorTypeSource))

	bad := filepath.Join(dir, "bad.json")
	writeJSON(t, bad, `{"not": "a list"}`)
	_, err = MergeInto(posts, bad)
	assert.True(t, xerrors.IsType(err, xerrors.ErrorTypeParsing))
}

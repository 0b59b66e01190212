package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xfollow/pkg/logger"
	"xfollow/pkg/models"
)

func newTestScanner(t *testing.T) (*State, *pageSource, *Scanner, *logger.TestLogger) {
	t.Helper()
	log := logger.NewTestLogger()
	state := NewState(log)
	page := &pageSource{}
	return state, page, NewScanner(state, page, "", log), log
}

func TestScanDeduplicatesUnchangedPage(t *testing.T) {
	state, page, scanner, log := newTestScanner(t)
	page.render(userCell("a", "A"), userCell("b", "B"), userCell("a", "A again"))

	first := scanner.Scan(context.Background())
	assert.Equal(t, 3, first.Cells)
	assert.Equal(t, 2, first.New)
	assert.Equal(t, 2, first.BufferSize)

	second := scanner.Scan(context.Background())
	assert.Equal(t, 0, second.New)
	assert.Equal(t, first.BufferSize, second.BufferSize)
	assert.Equal(t, 2, state.Sizes().Buffer)

	// idle ticks stay quiet
	assert.Equal(t, 1, log.CountMessage("new records collected"))
}

func TestScanAccumulatesAcrossScrolls(t *testing.T) {
	state, page, scanner, _ := newTestScanner(t)

	page.render(userCell("a", "A"), userCell("b", "B"))
	scanner.Scan(context.Background())

	// virtualized list: earlier rows are unmounted as new ones appear
	page.render(userCell("b", "B"), userCell("c", "C"))
	res := scanner.Scan(context.Background())

	assert.Equal(t, 1, res.New)
	handles := []string{}
	for _, rec := range state.buffer.Records() {
		handles = append(handles, rec.Handle)
	}
	assert.Equal(t, []string{"a", "b", "c"}, handles)
}

func TestScanSkipsMalformedRows(t *testing.T) {
	state, page, scanner, log := newTestScanner(t)
	page.render(
		`<div data-testid="UserCell"><span>promoted</span></div>`,
		userCell("ok", "OK"),
	)

	res := scanner.Scan(context.Background())
	assert.Equal(t, 2, res.Cells)
	assert.Equal(t, 1, res.Parsed)
	assert.Equal(t, 1, state.Sizes().Buffer)
	assert.Empty(t, log.GetMessagesByLevel("ERROR"))
	assert.Empty(t, log.GetMessagesByLevel("WARN"))
}

func TestScanUnreadablePage(t *testing.T) {
	state, page, scanner, log := newTestScanner(t)
	page.render(userCell("a", "A"))
	scanner.Scan(context.Background())

	page.fail = true
	res := scanner.Scan(context.Background())
	assert.Equal(t, 0, res.New)
	assert.Equal(t, 1, res.BufferSize)
	assert.Equal(t, 1, state.Sizes().Buffer)
	assert.Len(t, log.GetMessagesByLevel("WARN"), 1)
}

func TestMergeEmptyBufferIsNoop(t *testing.T) {
	state := NewState(logger.NewTestLogger())

	res := state.SaveFollowing()
	assert.Equal(t, MergeResult{Target: models.ListFollowing, Added: 0, Total: 0}, res)

	res = state.SaveFollowers()
	assert.Equal(t, MergeResult{Target: models.ListFollowers, Added: 0, Total: 0}, res)
}

func TestMergeNeverOverwrites(t *testing.T) {
	state, page, scanner, _ := newTestScanner(t)

	page.render(userCell("a", "A"))
	scanner.Scan(context.Background())
	require.Equal(t, 1, state.SaveFollowing().Added)

	page.render(userCell("a", "B"), userCell("n", "N"))
	scanner.Scan(context.Background())
	res := state.SaveFollowing()

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 2, res.Total)
	following, _ := state.Snapshot()
	rec, ok := following.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", rec.DisplayName)
}

func TestMergeClearsBufferAndIsIdempotent(t *testing.T) {
	state, page, scanner, _ := newTestScanner(t)
	page.render(userCell("a", "A"), userCell("b", "B"))
	scanner.Scan(context.Background())

	res := state.SaveFollowers()
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 0, state.Sizes().Buffer)

	again := state.SaveFollowers()
	assert.Equal(t, 0, again.Added)
	assert.Equal(t, 2, again.Total)

	sizes := state.Sizes()
	assert.Equal(t, Sizes{Following: 0, Followers: 2, Buffer: 0}, sizes)
}

func TestMergeClearsBufferWhenNothingAdded(t *testing.T) {
	state, page, scanner, _ := newTestScanner(t)
	page.render(userCell("a", "A"))
	scanner.Scan(context.Background())
	state.SaveFollowing()

	scanner.Scan(context.Background())
	require.Equal(t, 1, state.Sizes().Buffer)

	res := state.SaveFollowing()
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 0, state.Sizes().Buffer)
}

func TestSnapshotIsDetached(t *testing.T) {
	state, page, scanner, _ := newTestScanner(t)
	page.render(userCell("a", "A"))
	scanner.Scan(context.Background())
	state.SaveFollowing()

	following, followers := state.Snapshot()
	following.PutIfAbsent(models.UserRecord{Handle: "zz"})

	assert.Equal(t, 0, followers.Len())
	assert.Equal(t, 1, state.Sizes().Following)
}

func TestRegistryResumesState(t *testing.T) {
	reg := NewRegistry(logger.NewTestLogger())

	first, resumed := reg.Acquire("xfollowData")
	assert.False(t, resumed)

	page := &pageSource{}
	page.render(userCell("a", "A"))
	NewScanner(first, page, "", nil).Scan(context.Background())
	first.SaveFollowing()

	second, resumed := reg.Acquire("xfollowData")
	assert.True(t, resumed)
	assert.Same(t, first, second)
	assert.Equal(t, 1, second.Sizes().Following)

	other, resumed := reg.Acquire("elsewhere")
	assert.False(t, resumed)
	assert.NotEqual(t, first.ID, other.ID)
}

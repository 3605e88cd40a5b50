package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// historyRow builds a timestamped history row for tests.
func historyRow(site, text string, at time.Time) HistoricalAlarm {
	return HistoricalAlarm{
		Site:      site,
		AlarmTime: at,
		HasTime:   true,
		AlarmText: text,
	}
}

// TestAggregateLatest_PicksMaximumTime verifies the latest row wins per site
// and that every distinct site yields exactly one record.
func TestAggregateLatest_PicksMaximumTime(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	history := []HistoricalAlarm{
		historyRow("SITE042", "Link Down", base),
		historyRow("SITE042", "Power Failure", base.Add(2*time.Hour)),
		historyRow("SITE042", "Link Down", base.Add(time.Hour)),
		historyRow("HUB77", "High Temperature", base),
	}

	records := AggregateLatest(history)
	require.Len(t, records, 2)

	// Output is sorted by site name.
	require.Equal(t, "HUB77", records[0].Site)
	require.Equal(t, "SITE042", records[1].Site)

	require.Equal(t, "Power Failure", records[1].LatestAlarmText)
	require.True(t, records[1].HasTime)
	require.Equal(t, base.Add(2*time.Hour), records[1].LatestAlarmTime)
}

// TestAggregateLatest_TieKeepsFirst ensures duplicate maximum timestamps
// resolve to the first-encountered row.
func TestAggregateLatest_TieKeepsFirst(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	history := []HistoricalAlarm{
		historyRow("SITE042", "first", at),
		historyRow("SITE042", "second", at),
	}

	records := AggregateLatest(history)
	require.Len(t, records, 1)
	require.Equal(t, "first", records[0].LatestAlarmText)
}

// TestAggregateLatest_NullTimestamps checks that rows without timestamps
// never displace timestamped rows and that an all-null site still yields a
// record with the first row's text.
func TestAggregateLatest_NullTimestamps(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	history := []HistoricalAlarm{
		{Site: "SITE042", AlarmText: "untimed"},
		historyRow("SITE042", "timed", at),
		{Site: "SITE042", AlarmText: "untimed later"},
		{Site: "GHOST01", AlarmText: "first untimed"},
		{Site: "GHOST01", AlarmText: "second untimed"},
	}

	records := AggregateLatest(history)
	require.Len(t, records, 2)

	require.Equal(t, "GHOST01", records[0].Site)
	require.False(t, records[0].HasTime)
	require.Equal(t, "first untimed", records[0].LatestAlarmText)

	require.Equal(t, "SITE042", records[1].Site)
	require.True(t, records[1].HasTime)
	require.Equal(t, "timed", records[1].LatestAlarmText)
}

// TestAggregateLatest_OrderIndependent verifies the reduction yields the
// same latest record regardless of input row order when timestamps are
// distinct.
func TestAggregateLatest_OrderIndependent(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	rows := []HistoricalAlarm{
		historyRow("SITE042", "oldest", base),
		historyRow("SITE042", "middle", base.Add(time.Hour)),
		historyRow("SITE042", "newest", base.Add(2*time.Hour)),
	}

	forward := AggregateLatest(rows)

	reversed := []HistoricalAlarm{rows[2], rows[1], rows[0]}
	backward := AggregateLatest(reversed)

	require.Equal(t, forward, backward)
	require.Equal(t, "newest", forward[0].LatestAlarmText)
}

// TestAggregateLatest_SkipsBlankSites ensures rows without a site name are
// ignored and site names are trimmed before grouping.
func TestAggregateLatest_SkipsBlankSites(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	history := []HistoricalAlarm{
		historyRow("", "orphan", at),
		historyRow("  SITE042  ", "trimmed", at),
	}

	records := AggregateLatest(history)
	require.Len(t, records, 1)
	require.Equal(t, "SITE042", records[0].Site)
}

// TestIndexBySite_DuplicateIsFatal verifies the join-side uniqueness guard.
func TestIndexBySite_DuplicateIsFatal(t *testing.T) {
	t.Parallel()

	records := []SiteRecord{
		{Site: "SITE042", LatestAlarmText: "a"},
		{Site: "SITE042", LatestAlarmText: "b"},
	}

	index, err := IndexBySite(records)
	require.ErrorIs(t, err, ErrDuplicateSite)
	require.Nil(t, index)
}

// TestIndexBySite_Lookup ensures the index resolves every aggregated site.
func TestIndexBySite_Lookup(t *testing.T) {
	t.Parallel()

	records := AggregateLatest([]HistoricalAlarm{
		historyRow("SITE042", "Power Failure", time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)),
	})

	index, err := IndexBySite(records)
	require.NoError(t, err)
	require.Contains(t, index, "SITE042")
	require.Equal(t, "Power Failure", index["SITE042"].LatestAlarmText)
}

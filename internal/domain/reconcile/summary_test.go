package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSummarize counts statuses and orders site totals busiest-first.
func TestSummarize(t *testing.T) {
	t.Parallel()

	results := []Validated{
		{SiteCode: "SITE042", HasSite: true, Status: StatusValid},
		{SiteCode: "SITE042", HasSite: true, Status: StatusInvalid},
		{SiteCode: "HUB77", HasSite: true, Status: StatusValid},
		{Status: StatusNotInNMS},
	}

	summary := Summarize(results)

	require.Equal(t, 4, summary.Total)
	require.Equal(t, 2, summary.Valid)
	require.Equal(t, 1, summary.Invalid)
	require.Equal(t, 1, summary.NotInNMS)

	require.Equal(t, []SiteCount{
		{Site: "SITE042", Tickets: 2},
		{Site: "HUB77", Tickets: 1},
	}, summary.SiteCounts)
}

// TestSummarize_TieBreaksBySiteName verifies deterministic ordering when
// sites carry the same ticket count.
func TestSummarize_TieBreaksBySiteName(t *testing.T) {
	t.Parallel()

	results := []Validated{
		{SiteCode: "BBB01", HasSite: true, Status: StatusValid},
		{SiteCode: "AAA01", HasSite: true, Status: StatusValid},
	}

	summary := Summarize(results)
	require.Equal(t, []SiteCount{
		{Site: "AAA01", Tickets: 1},
		{Site: "BBB01", Tickets: 1},
	}, summary.SiteCounts)
}

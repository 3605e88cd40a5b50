package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateSite indicates two aggregated records share a site name.
// Aggregation guarantees uniqueness, so hitting this during the join is an
// internal-consistency violation that must abort the batch.
var ErrDuplicateSite = errors.New("duplicate aggregated site record")

// AggregateLatest reduces the NMS history to one record per site holding
// the latest alarm. The reduction is a single pass over the input:
//   - the row with the maximum parseable alarm time wins;
//   - on duplicate maximum timestamps the first-encountered row is kept;
//   - rows without a parseable timestamp never displace a timestamped row,
//     and a site whose rows all lack timestamps yields a record with no
//     time and the text of its first row.
//
// The result is sorted by site name so downstream iteration is
// deterministic. Rows with a blank site name are skipped; no site code can
// ever join against them.
func AggregateLatest(history []HistoricalAlarm) []SiteRecord {
	latest := make(map[string]*SiteRecord, len(history))

	for _, row := range history {
		site := strings.TrimSpace(row.Site)
		if site == "" {
			continue
		}

		current, ok := latest[site]
		if !ok {
			latest[site] = &SiteRecord{
				Site:            site,
				LatestAlarmTime: row.AlarmTime,
				HasTime:         row.HasTime,
				LatestAlarmText: row.AlarmText,
			}

			continue
		}

		if !row.HasTime {
			continue
		}

		if !current.HasTime || row.AlarmTime.After(current.LatestAlarmTime) {
			current.LatestAlarmTime = row.AlarmTime
			current.HasTime = true
			current.LatestAlarmText = row.AlarmText
		}
	}

	records := make([]SiteRecord, 0, len(latest))
	for _, record := range latest {
		records = append(records, *record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Site < records[j].Site
	})

	return records
}

// IndexBySite builds a lookup table from aggregated records, enforcing the
// one-record-per-site invariant. A duplicate site returns ErrDuplicateSite.
func IndexBySite(records []SiteRecord) (map[string]*SiteRecord, error) {
	index := make(map[string]*SiteRecord, len(records))

	for i := range records {
		record := &records[i]
		if _, exists := index[record.Site]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSite, record.Site)
		}

		index[record.Site] = record
	}

	return index, nil
}

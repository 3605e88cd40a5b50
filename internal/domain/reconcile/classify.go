package reconcile

import "strings"

// Options tunes the reconciliation run.
type Options struct {
	// StrictMatch switches the alarm-text comparison to exact byte
	// equality. The default comparison is case-insensitive and ignores
	// leading, trailing and repeated internal whitespace.
	StrictMatch bool
}

// Matcher implements the alarm-text comparison rule.
type Matcher struct {
	// Strict selects exact byte equality instead of normalized comparison.
	Strict bool
}

// Equal reports whether a reported alarm text matches a recorded one under
// the configured rule.
func (m Matcher) Equal(reported, recorded string) bool {
	if m.Strict {
		return reported == recorded
	}

	return strings.EqualFold(normalizeSpace(reported), normalizeSpace(recorded))
}

// normalizeSpace trims the string and collapses internal whitespace runs to
// a single space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Reconcile runs the full pipeline: extract a site code per daily ticket,
// aggregate the history to the latest alarm per site, left-join the two by
// site code and classify every ticket. The result holds exactly one entry
// per daily ticket, in input order; tickets with missing or malformed
// fields are classified by the same rules, never dropped.
func Reconcile(daily []DailyTicket, history []HistoricalAlarm, opts Options) ([]Validated, error) {
	records := AggregateLatest(history)

	index, err := IndexBySite(records)
	if err != nil {
		return nil, err
	}

	matcher := Matcher{Strict: opts.StrictMatch}
	results := make([]Validated, 0, len(daily))

	for _, ticket := range daily {
		validated := Validated{
			Ticket: ticket,
			Status: StatusNotInNMS,
		}

		if code, ok := ExtractSiteCode(ticket.ShortDescription); ok {
			validated.SiteCode = code
			validated.HasSite = true

			if record, found := index[code]; found {
				validated.Record = record

				if matcher.Equal(ticket.Alarms, record.LatestAlarmText) {
					validated.Status = StatusValid
				} else {
					validated.Status = StatusInvalid
				}
			}
		}

		results = append(results, validated)
	}

	return results, nil
}

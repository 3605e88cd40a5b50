package reconcile

import "time"

// ValidationStatus labels the outcome of reconciling one daily ticket
// against the NMS history.
type ValidationStatus string

// Validation outcomes. Every output row carries exactly one of these.
const (
	// StatusValid means the reported alarm text matches the latest alarm
	// recorded by the NMS for the ticket's site.
	StatusValid ValidationStatus = "VALID"
	// StatusInvalid means the site is known to the NMS but the reported
	// alarm text differs from the latest recorded alarm.
	StatusInvalid ValidationStatus = "INVALID"
	// StatusNotInNMS means no site code could be derived, or the derived
	// site code has no record in the NMS history.
	StatusNotInNMS ValidationStatus = "NOT IN NMS"
)

// DailyTicket is one row of the daily operational ticket feed.
type DailyTicket struct {
	// ShortDescription is the free-text description the site code is
	// extracted from.
	ShortDescription string
	// Alarms is the alarm text reported on the ticket today.
	Alarms string
}

// HistoricalAlarm is one row of the NMS history feed.
type HistoricalAlarm struct {
	// Site is the controlling object name, the NMS equivalent of a site code.
	Site string
	// AlarmTime is when the alarm originated. Only meaningful when HasTime
	// is true; unparseable or missing source values leave it zero.
	AlarmTime time.Time
	// HasTime reports whether AlarmTime holds a real timestamp.
	HasTime bool
	// AlarmText is the alarm description recorded by the NMS.
	AlarmText string
}

// SiteRecord is the aggregated latest-alarm state for one site.
type SiteRecord struct {
	// Site is the controlling object name the record was aggregated for.
	Site string
	// LatestAlarmTime is the maximum alarm time among the site's history
	// rows. Only meaningful when HasTime is true.
	LatestAlarmTime time.Time
	// HasTime reports whether any history row for the site carried a
	// parseable timestamp.
	HasTime bool
	// LatestAlarmText is the alarm text of the row bearing the maximum
	// timestamp.
	LatestAlarmText string
}

// Validated is a daily ticket annotated with its join result and status.
type Validated struct {
	// Ticket is the original daily ticket row.
	Ticket DailyTicket
	// SiteCode is the site code derived from the ticket description.
	// Only meaningful when HasSite is true.
	SiteCode string
	// HasSite reports whether a site code was extracted.
	HasSite bool
	// Record is the matched aggregated site record, nil when the site is
	// not present in the NMS history.
	Record *SiteRecord
	// Status is the classification outcome.
	Status ValidationStatus
}

package tickets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nmsops/ticket-reconciler/internal/config"
)

// writeFile drops CSV content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// TestReadDaily loads a daily feed and exposes both raw and typed rows.
func TestReadDaily(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "daily.csv",
		"number,short_description,ALARMS\n"+
			"INC001,(North) SITE042 power fail,Power Failure\n"+
			"INC002,nothing to see,\n")

	table, err := ReadDaily(path, config.Default().Daily)
	require.NoError(t, err)

	require.Equal(t, []string{"number", "short_description", "ALARMS"}, table.Header)
	require.Len(t, table.Records, 2)
	require.Len(t, table.Tickets, 2)

	require.Equal(t, "(North) SITE042 power fail", table.Tickets[0].ShortDescription)
	require.Equal(t, "Power Failure", table.Tickets[0].Alarms)
	require.Empty(t, table.Tickets[1].Alarms)
}

// TestReadDaily_HeaderMatchingIsLenient accepts case and whitespace
// variations in header names.
func TestReadDaily_HeaderMatchingIsLenient(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "daily.csv",
		" Short_Description , alarms \nsomething,text\n")

	table, err := ReadDaily(path, config.Default().Daily)
	require.NoError(t, err)
	require.Equal(t, "something", table.Tickets[0].ShortDescription)
	require.Equal(t, "text", table.Tickets[0].Alarms)
}

// TestReadDaily_SchemaError reports every missing column at once, before
// any row is processed.
func TestReadDaily_SchemaError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "daily.csv", "number,opened_at\nINC001,2025-07-01\n")

	_, err := ReadDaily(path, config.Default().Daily)

	var schemaErr *SchemaError

	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "daily tickets", schemaErr.Role)
	require.ElementsMatch(t, []string{"short_description", "ALARMS"}, schemaErr.Missing)
}

// TestReadHistory parses timestamps under the configured layout and
// recovers malformed ones to null.
func TestReadHistory(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "history.csv",
		"Controlling Object Name,Origin Alarm Time,Alarm Text\n"+
			"SITE042,2025-07-01 08:00:00,Power Failure\n"+
			"SITE042,not-a-time,Link Down\n"+
			"HUB77,,High Temperature\n")

	history, stats, err := ReadHistory(path, config.Default().History, config.DefaultTimeLayout)
	require.NoError(t, err)

	require.Equal(t, 3, stats.Rows)
	require.Equal(t, 2, stats.BadTimestamps)
	require.Len(t, history, 3)

	require.True(t, history[0].HasTime)
	require.Equal(t, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC), history[0].AlarmTime)
	require.False(t, history[1].HasTime)
	require.False(t, history[2].HasTime)
	require.Equal(t, "High Temperature", history[2].AlarmText)
}

// TestReadHistory_SchemaError verifies the history feed is schema-checked too.
func TestReadHistory_SchemaError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "history.csv", "Controlling Object Name,Alarm Text\nSITE042,x\n")

	_, _, err := ReadHistory(path, config.Default().History, config.DefaultTimeLayout)

	var schemaErr *SchemaError

	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, []string{"Origin Alarm Time"}, schemaErr.Missing)
}

// TestReadTable_ErrorCases covers missing and empty input files.
func TestReadTable_ErrorCases(t *testing.T) {
	t.Parallel()

	_, err := ReadDaily(filepath.Join(t.TempDir(), "absent.csv"), config.Default().Daily)
	require.Error(t, err)

	empty := writeFile(t, "empty.csv", "")

	_, err = ReadDaily(empty, config.Default().Daily)
	require.ErrorIs(t, err, errEmptyFile)
}

// TestReadDaily_RaggedRows resolves short rows to empty fields instead of
// failing the batch.
func TestReadDaily_RaggedRows(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "daily.csv",
		"number,short_description,ALARMS\n"+
			"INC001,(North) SITE042\n")

	table, err := ReadDaily(path, config.Default().Daily)
	require.NoError(t, err)
	require.Equal(t, "(North) SITE042", table.Tickets[0].ShortDescription)
	require.Empty(t, table.Tickets[0].Alarms)
}

package appointment

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// notNullColumns читает из миграции колонки таблицы appointments с NOT NULL
func notNullColumns(t *testing.T) map[string]bool {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	ddl := string(raw)
	start := strings.Index(ddl, "CREATE TABLE IF NOT EXISTS appointments (")
	require.NotEqual(t, -1, start, "appointments table not found in migration")
	body := ddl[start:]
	body = body[:strings.Index(body, ");")]

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	result := make(map[string]bool)
	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !known[fields[0]] {
			continue
		}
		result[fields[0]] = strings.Contains(strings.ToUpper(line), "NOT NULL")
	}
	return result
}

func TestInsertValues_MatchColumns(t *testing.T) {
	values := insertValues(&domain.Appointment{})
	assert.Len(t, values, len(columns)-1)
}

func TestInsertValues_OptionalFieldsAreNullable(t *testing.T) {
	schema := notNullColumns(t)
	for _, c := range columns {
		_, ok := schema[c]
		require.True(t, ok, "column %s is missing from migration", c)
	}

	appt := &domain.Appointment{
		BookingReference:    "BKAAAA1111",
		BranchID:            1,
		CustomerFirstName:   "Thandi",
		CustomerLastName:    "Nkosi",
		CustomerEmail:       "thandi@example.com",
		CustomerPhone:       "+27 82 000 0000",
		AppointmentDateTime: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		DurationMinutes:     30,
		Status:              domain.StatusConfirmed,
	}

	for i, v := range insertValues(appt) {
		column := columns[i+1]
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || !rv.IsNil() {
			continue
		}
		assert.False(t, schema[column], "column %s receives NULL but is NOT NULL in migration", column)
	}
}

func TestInsertValues_PurposeIsOptional(t *testing.T) {
	schema := notNullColumns(t)
	assert.False(t, schema["purpose"])
	assert.False(t, schema["notes"])
	assert.True(t, schema["booking_reference"])
}

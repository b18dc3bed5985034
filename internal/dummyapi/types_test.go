package dummyapi

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func names(records []EmployeeRecord) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.EmployeeName)
	}
	return out
}

func TestEnvelopeEmployees(t *testing.T) {
	table := []struct {
		name     string
		body     string
		expected []string
		noData   bool
	}{
		{
			name:     "single record",
			body:     `{"status":"success","data":[{"employee_name":"Alice"}]}`,
			expected: []string{"Alice"},
		},
		{
			name: "order is kept",
			body: `{"status":"success","data":[
				{"id":1,"employee_name":"Tiger Nixon","employee_salary":320800,"employee_age":61},
				{"id":2,"employee_name":"Garrett Winters","employee_salary":170750,"employee_age":63},
				{"id":3,"employee_name":"Ashton Cox","employee_salary":86000,"employee_age":66}
			]}`,
			expected: []string{"Tiger Nixon", "Garrett Winters", "Ashton Cox"},
		},
		{
			name:     "empty list",
			body:     `{"status":"success","data":[]}`,
			expected: []string{},
		},
		{
			name:     "missing and non-string names",
			body:     `{"status":"success","data":[{"id":1},{"employee_name":7}]}`,
			expected: []string{"", "7"},
		},
		{name: "failed status", body: `{"status":"failed","data":[{"employee_name":"Alice"}]}`, noData: true},
		{name: "data missing", body: `{"status":"success"}`, noData: true},
		{name: "data is an object", body: `{"status":"success","data":{"employee_name":"Alice"}}`, noData: true},
		{name: "data is null", body: `{"status":"success","data":null}`, noData: true},
		{name: "items are not objects", body: `{"status":"success","data":["Alice"]}`, noData: true},
		{name: "status is not a string", body: `{"status":true,"data":[]}`, noData: true},
		{name: "body is an array", body: `[{"employee_name":"Alice"}]`, noData: true},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			env, err := ParseEnvelope([]byte(row.body))
			require.NoError(t, err)

			records, err := env.Employees()
			if row.noData {
				require.ErrorIs(t, err, ErrNoEmployeeData)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(row.expected, names(records)); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEnvelopeMalformed(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{"status":"success","data":[`))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoEmployeeData))
}

func TestEmployeeRecordKeepsFields(t *testing.T) {
	var record EmployeeRecord
	err := json.Unmarshal([]byte(`{"employee_name":"Alice","employee_salary":"100","employee_age":"30"}`), &record)
	require.NoError(t, err)
	require.Equal(t, "Alice", record.EmployeeName)
	require.JSONEq(t, `"100"`, string(record.Fields["employee_salary"]))

	out, err := json.Marshal(record)
	require.NoError(t, err)
	require.JSONEq(t, `{"employee_name":"Alice","employee_salary":"100","employee_age":"30"}`, string(out))
}

package dummyapi

import (
	"bytes"
	"encoding/json"
)

// EmployeeRecord is a single entry of the employee list. only EmployeeName is
// interpreted, every field (including employee_name) is kept in Fields.
type EmployeeRecord struct {
	EmployeeName string
	Fields       map[string]json.RawMessage
}

func (r *EmployeeRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}

	*r = EmployeeRecord{Fields: fields}
	raw, ok := fields["employee_name"]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if json.Unmarshal(raw, &r.EmployeeName) != nil {
		// non-string names are displayed as their JSON text
		r.EmployeeName = string(raw)
	}
	return nil
}

func (r EmployeeRecord) MarshalJSON() ([]byte, error) {
	if r.Fields != nil {
		return json.Marshal(r.Fields)
	}
	return json.Marshal(map[string]string{"employee_name": r.EmployeeName})
}

// Envelope is the top level object returned by the list endpoint.
type Envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

const StatusSuccess = "success"

// ParseEnvelope decodes the body of a list response. it only fails when the
// body is not JSON, bodies of the wrong shape decode into an Envelope whose
// Employees call reports ErrNoEmployeeData.
func ParseEnvelope(body []byte) (Envelope, error) {
	if !json.Valid(body) {
		return Envelope{}, errMalformedBody
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) != nil {
		// valid JSON that is not an object
		return Envelope{}, nil
	}

	var env Envelope
	status, ok := fields["status"]
	if ok && json.Unmarshal(status, &env.Status) != nil {
		env.Status = ""
	}
	env.Data = fields["data"]
	return env, nil
}

// Employees returns the records carried by the envelope. `data` is only
// meaningful for a successful envelope, any other envelope yields an error
// wrapping ErrNoEmployeeData.
func (e Envelope) Employees() ([]EmployeeRecord, error) {
	err := validateEnvelope(e)
	if err != nil {
		return nil, err
	}

	records := []EmployeeRecord{}
	err = json.Unmarshal(e.Data, &records)
	if err != nil {
		return nil, noEmployeeData(err.Error())
	}
	return records, nil
}

// RecordPayload is the body of a create request.
type RecordPayload struct {
	Name   string `json:"name"`
	Salary string `json:"salary"`
	Age    string `json:"age"`
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateApplicationRequest_IgnoresServerAssignedFields(t *testing.T) {
	body := `{
		"id": 999,
		"userId": "someone-else",
		"createdAt": "2001-01-01T00:00:00Z",
		"updatedAt": "2001-01-01T00:00:00Z",
		"company": "Acme",
		"role": "SWE",
		"salaryMin": "90000",
		"salaryMax": 120000
	}`

	var req CreateApplicationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "Acme", req.Company)
	assert.Equal(t, "SWE", req.Role)
	assert.Equal(t, int64(90000), *req.SalaryMin.Ptr())
	assert.Equal(t, int64(120000), *req.SalaryMax.Ptr())

	// Round-tripping shows no trace of the server-assigned members.
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "userId")
	assert.NotContains(t, string(data), "999")
}

func TestCreateApplicationRequest_Defaults(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var req CreateApplicationRequest
	assert.Equal(t, StatusApplied, req.StatusOrDefault())
	assert.Equal(t, now, req.DateAppliedOr(now))

	status := "Offer"
	applied := NewFlexTime(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	req.Status = &status
	req.DateApplied = &applied
	assert.Equal(t, StatusOffer, req.StatusOrDefault())
	assert.Equal(t, applied.Time, req.DateAppliedOr(now))
}

func TestUpdateApplicationRequest_Changes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Change
	}{
		{
			name: "empty payload changes nothing",
			body: `{}`,
			want: nil,
		},
		{
			name: "status only",
			body: `{"status":"Offer"}`,
			want: []Change{{Column: "status", Value: "Offer"}},
		},
		{
			name: "null clears optional columns",
			body: `{"notes":null,"location":null}`,
			want: []Change{
				{Column: "location", Value: nil},
				{Column: "notes", Value: nil},
			},
		},
		{
			name: "empty salary string clears",
			body: `{"salaryMin":"","salaryMax":"150000"}`,
			want: []Change{
				{Column: "salary_min", Value: nil},
				{Column: "salary_max", Value: int64(150000)},
			},
		},
		{
			name: "null on a required column is skipped",
			body: `{"company":null,"role":"Staff Engineer"}`,
			want: []Change{{Column: "role", Value: "Staff Engineer"}},
		},
		{
			name: "date applied",
			body: `{"dateApplied":"2024-02-01"}`,
			want: []Change{{Column: "date_applied", Value: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateApplicationRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Changes())
		})
	}
}

func TestCreateInterviewRequest_Coercion(t *testing.T) {
	var req CreateInterviewRequest
	err := json.Unmarshal([]byte(`{"applicationId":"12","date":"2024-04-02T10:00:00Z","type":"Video"}`), &req)
	require.NoError(t, err)

	assert.True(t, req.ApplicationID.Valid)
	assert.Equal(t, int64(12), req.ApplicationID.Value)
	assert.True(t, req.Date.Valid)
	assert.Equal(t, time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC), req.Date.Time)
	assert.Equal(t, InterviewVideo, req.Type)
}

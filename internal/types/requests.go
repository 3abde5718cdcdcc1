//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// CreateApplicationRequest is the client-supplied part of a new application.
// Server-assigned fields (id, userId, createdAt, updatedAt) have no member here,
// so a payload carrying them decodes without them.
type CreateApplicationRequest struct {
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Location    *string   `json:"location,omitempty"`
	JobType     *string   `json:"jobType,omitempty"`
	Status      *string   `json:"status,omitempty"`
	DateApplied *FlexTime `json:"dateApplied,omitempty"`
	Link        *string   `json:"link,omitempty"`
	SalaryMin   *FlexInt  `json:"salaryMin,omitempty"`
	SalaryMax   *FlexInt  `json:"salaryMax,omitempty"`
	Description *string   `json:"description,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

// StatusOrDefault returns the requested status, or Applied when none was given.
func (r *CreateApplicationRequest) StatusOrDefault() Status {
	if r.Status == nil || *r.Status == "" {
		return StatusApplied
	}
	return Status(*r.Status)
}

// DateAppliedOr returns the requested application date, or now when none was given.
func (r *CreateApplicationRequest) DateAppliedOr(now time.Time) time.Time {
	if t := r.DateApplied.Ptr(); t != nil {
		return *t
	}
	return now
}

// UpdateApplicationRequest is a partial update. Absent members leave the column unchanged;
// an explicit null clears an optional column. Company, role, status and dateApplied cannot be cleared.
type UpdateApplicationRequest struct {
	Company     Field[string]   `json:"company,omitzero"`
	Role        Field[string]   `json:"role,omitzero"`
	Location    Field[string]   `json:"location,omitzero"`
	JobType     Field[string]   `json:"jobType,omitzero"`
	Status      Field[string]   `json:"status,omitzero"`
	DateApplied Field[FlexTime] `json:"dateApplied,omitzero"`
	Link        Field[string]   `json:"link,omitzero"`
	SalaryMin   Field[FlexInt]  `json:"salaryMin,omitzero"`
	SalaryMax   Field[FlexInt]  `json:"salaryMax,omitzero"`
	Description Field[string]   `json:"description,omitzero"`
	Notes       Field[string]   `json:"notes,omitzero"`
}

// Change is one column assignment of a partial update. A nil Value stores NULL.
type Change struct {
	Column string
	Value  any
}

// Changes lists the column assignments carried by the request, in a fixed column order.
// updated_at is not included; stores refresh it on every update.
// A null on a column that cannot be cleared is rejected during validation and skipped here.
func (r *UpdateApplicationRequest) Changes() []Change {
	var changes []Change

	required := func(col string, f Field[string]) {
		if f.Set && !f.Null {
			changes = append(changes, Change{Column: col, Value: f.Value})
		}
	}
	optional := func(col string, f Field[string]) {
		if !f.Set {
			return
		}
		if f.Null {
			changes = append(changes, Change{Column: col, Value: nil})
			return
		}
		changes = append(changes, Change{Column: col, Value: f.Value})
	}
	salary := func(col string, f Field[FlexInt]) {
		if !f.Set {
			return
		}
		if f.Null || !f.Value.Valid {
			changes = append(changes, Change{Column: col, Value: nil})
			return
		}
		changes = append(changes, Change{Column: col, Value: f.Value.Value})
	}

	required("company", r.Company)
	required("role", r.Role)
	optional("location", r.Location)
	optional("job_type", r.JobType)
	required("status", r.Status)
	if r.DateApplied.Set && !r.DateApplied.Null && r.DateApplied.Value.Valid {
		changes = append(changes, Change{Column: "date_applied", Value: r.DateApplied.Value.Time})
	}
	optional("link", r.Link)
	salary("salary_min", r.SalaryMin)
	salary("salary_max", r.SalaryMax)
	optional("description", r.Description)
	optional("notes", r.Notes)

	return changes
}

// CreateInterviewRequest is the client-supplied part of a new interview.
type CreateInterviewRequest struct {
	ApplicationID FlexInt  `json:"applicationId"`
	Date          FlexTime `json:"date"`
	Type          string   `json:"type"`
	Location      *string  `json:"location,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var jsonNull = []byte("null")

// FlexInt is an integer that also accepts a JSON string of digits, as sent by HTML forms.
// An empty string decodes the same as null (Valid is false).
type FlexInt struct {
	Value int64
	Valid bool
}

// NewFlexInt returns a valid FlexInt holding v.
func NewFlexInt(v int64) FlexInt {
	return FlexInt{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = FlexInt{}
	if bytes.Equal(data, jsonNull) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", string(data))
	}
	f.Value = n
	f.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return jsonNull, nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// Ptr returns the value as a pointer, nil when not valid.
func (f *FlexInt) Ptr() *int64 {
	if f == nil || !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// timeLayouts are tried in order when decoding a FlexTime from a string.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FlexTime is a timestamp that accepts RFC 3339 strings, bare dates (YYYY-MM-DD),
// date-times with a T or space separator and optional seconds or zone (no zone is
// read as UTC) and numbers of epoch milliseconds.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

// NewFlexTime returns a valid FlexTime holding t.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = FlexTime{}
	if bytes.Equal(data, jsonNull) {
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("expected a date, got %s", string(data))
		}
		f.Time = time.UnixMilli(ms).UTC()
		f.Valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseTime(s)
	if err != nil {
		return err
	}
	f.Time = t
	f.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return jsonNull, nil
	}
	return json.Marshal(f.Time.UTC().Format(time.RFC3339Nano))
}

// Ptr returns the time as a pointer, nil when not valid.
func (f *FlexTime) Ptr() *time.Time {
	if f == nil || !f.Valid {
		return nil
	}
	t := f.Time
	return &t
}

// ParseTime parses s with the layouts accepted by FlexTime.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	value := s
	// "YYYY-MM-DD HH:MM" is read like the T-separated form.
	if len(value) > 10 && value[10] == ' ' {
		value = value[:10] + "T" + value[11:]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Field distinguishes an absent JSON member from an explicit null.
// Set is true when the member was present; Null is true when it was present and null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a Field that is set to v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that is explicitly null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for members present in the input.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*f = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Some(v)
	return nil
}

// MarshalJSON implements json.Marshaler. Use the omitzero tag option to drop unset fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}

package validation

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

// Payload is a decoded request body before any typing: the five field
// names mapped to raw JSON values, any of which may be absent. Numbers
// must be decoded as json.Number (json.Decoder.UseNumber).
type Payload map[string]any

// ValidatePayload turns a raw payload into a Student and validates it.
//
// Non-string values are read the way the API always has:
//
//	student_name           any truthy scalar; 0, false and null count as missing
//	student_email, _phone  numbers and booleans are checked as their text,
//	                       so a numeric phone 1234567890 is accepted
//	student_dob, _gender   strings only
//
// Objects and arrays fail the rule of the field they appear in. Whatever
// is accepted is stored as its text form.
func (v *Validator) ValidatePayload(p Payload) (types.Student, error) {
	student := types.Student{
		Name:   truthyText(p["student_name"]),
		DOB:    stringOnly(p["student_dob"]),
		Gender: stringOnly(p["student_gender"]),
		Email:  scalarText(p["student_email"]),
		Phone:  scalarText(p["student_phone"]),
	}

	if err := v.Validate(student); err != nil {
		return types.Student{}, err
	}
	return student, nil
}

func stringOnly(raw any) string {
	s, _ := raw.(string)
	return s
}

func scalarText(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return numberText(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func truthyText(raw any) string {
	switch v := raw.(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return ""
		}
		return numberText(v)
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		return scalarText(raw)
	}
}

// numberText renders a JSON number the way it prints in JavaScript:
// 1234567890.0 and 1.23456789e9 both become "1234567890".
func numberText(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Package validation checks student payloads before they reach the store.
//
// The rules live as struct tags on types.Student and are enforced by the
// go-playground/validator package. Three of them are custom tags registered
// here because the built-in ones are either stricter or looser than the
// behaviour the API has always had:
//
//	pastdate   — parses as a date and is not later than "now"
//	looseemail — local@domain.tld with no whitespace, exactly one "@"
//	phone10    — exactly ten ASCII digits
//
// A payload is either accepted (nil) or rejected with exactly ONE reason,
// the first failing field in declaration order.
package validation

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

// Client-facing rejection messages, one per field.
const (
	MsgInvalidName   = "Invalid student name"
	MsgInvalidDOB    = "Invalid date of birth"
	MsgInvalidGender = "Invalid student gender"
	MsgInvalidEmail  = "Invalid email address"
	MsgInvalidPhone  = "Invalid phone number"
)

// emailPart is one run of characters that are neither "@" nor whitespace.
// Whitespace is the JavaScript \s set: RE2's \s lacks \v and the Unicode
// spaces, so they are listed explicitly.
const emailPart = `[^\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+`

var (
	emailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// fieldMessages maps a types.Student struct field to its rejection message.
var fieldMessages = map[string]string{
	"Name":   MsgInvalidName,
	"DOB":    MsgInvalidDOB,
	"Gender": MsgInvalidGender,
	"Email":  MsgInvalidEmail,
	"Phone":  MsgInvalidPhone,
}

// Layouts accepted for student_dob. Date-only values are midnight UTC;
// date-time values without a zone are read in the local zone.
var (
	utcLayouts   = []string{"2006-01-02", "2006/01/02", time.RFC3339Nano}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
)

// Error is a rejected payload. Field is the struct field that failed and
// Message is the single sentence returned to the client.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// AsError unwraps err to a *Error, reporting whether it was one.
func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}

// Validator holds a configured go-playground validator and the clock used
// for the date-of-birth check. It is safe for concurrent use; build one at
// startup and share it between handlers.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option customises a Validator.
type Option func(*Validator)

// WithClock overrides time.Now for the "not in the future" check.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New builds a Validator with the custom student tags registered.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	// RegisterValidation only fails for an empty tag name or a nil func,
	// neither of which can happen here.
	_ = v.validate.RegisterValidation("pastdate", v.pastDate)
	_ = v.validate.RegisterValidation("looseemail", matches(emailPattern))
	_ = v.validate.RegisterValidation("phone10", matches(phonePattern))

	return v
}

// Validate returns nil when s may be written to the store, or a *Error
// naming the first invalid field. It never modifies s.
func (v *Validator) Validate(s types.Student) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		// InvalidValidationError: only possible for a nil or non-struct
		// argument, which the signature rules out.
		return err
	}

	// Errors come back in struct field order, so the first one is the
	// first rule that failed.
	field := fieldErrs[0].StructField()
	return &Error{Field: field, Message: fieldMessages[field]}
}

// pastDate accepts a parseable date that is not later than v.now().
func (v *Validator) pastDate(fl validator.FieldLevel) bool {
	dob, ok := ParseDate(fl.Field().String())
	if !ok {
		return false
	}
	return !dob.After(v.now())
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ParseDate parses a date of birth in any of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

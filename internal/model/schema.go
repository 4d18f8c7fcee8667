package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type FieldKind int

const (
	FieldString FieldKind = iota
	FieldChoice
	FieldDate
	FieldRef
)

// Validation error codes reported per field.
const (
	CodeRequired      = "required"
	CodeNull          = "null"
	CodeBlank         = "blank"
	CodeInvalidChoice = "invalid_choice"
	CodeInvalid       = "invalid"
	CodeMaxLength     = "max_length"
	CodeMinLength     = "min_length"
	CodeDoesNotExist  = "does_not_exist"
	CodeAuthorization = "authorization"
)

// NonFieldErrors is the key used for errors that are not tied to one field.
const NonFieldErrors = "non_field_errors"

type Choice struct {
	Value string
	Label string
}

type Choices []Choice

func (c Choices) Contains(value string) bool {
	for _, choice := range c {
		if choice.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for value, or value itself when unknown.
func (c Choices) Label(value string) string {
	for _, choice := range c {
		if choice.Value == value {
			return choice.Label
		}
	}
	return value
}

// Field describes one writable attribute of a resource.
// A field with a Default is never required. String input is trimmed
// unless KeepWhitespace is set. MinLength and MaxLength count characters,
// MaxBytes counts the UTF-8 encoded length.
type Field struct {
	Name           string
	Kind           FieldKind
	Required       bool
	AllowBlank     bool
	Nullable       bool
	KeepWhitespace bool
	MinLength      int
	MaxLength      int
	MaxBytes       int
	Choices        Choices
	Default        any
}

type Schema struct {
	Resource string
	Fields   []Field
}

// CleanedData holds validated values keyed by field name: string for
// string/choice fields, *Date for dates and int64 for references.
type CleanedData map[string]any

func (d CleanedData) String(name string) (string, bool) {
	v, ok := d[name].(string)
	return v, ok
}

func (d CleanedData) Int64(name string) (int64, bool) {
	v, ok := d[name].(int64)
	return v, ok
}

// Date reports the date stored under name. A present key holding nil means
// the field was explicitly cleared.
func (d CleanedData) Date(name string) (*Date, bool) {
	raw, ok := d[name]
	if !ok {
		return nil, false
	}
	v, _ := raw.(*Date)
	return v, true
}

type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields map[string][]FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]FieldError{}}
}

func (e *ValidationError) Add(field, code, message string) {
	e.Fields[field] = append(e.Fields[field], FieldError{Code: code, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Code returns the first error code recorded for field, or "".
func (e *ValidationError) Code(field string) string {
	if errs := e.Fields[field]; len(errs) > 0 {
		return errs[0].Code
	}
	return ""
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		codes := make([]string, 0, len(e.Fields[name]))
		for _, fe := range e.Fields[name] {
			codes = append(codes, fe.Code)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(codes, ",")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

const DateLayout = "2006-01-02"

// Date is a calendar day serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

func ParseDate(s string) (*Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &Date{Time: t}, nil
}

func DateFromTime(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

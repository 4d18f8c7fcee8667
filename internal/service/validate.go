package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/catapp/backend/internal/db"
	"github.com/catapp/backend/internal/model"
)

type writeMode int

const (
	modeCreate writeMode = iota
	modeUpdate
	modePartial
)

const (
	msgRequired    = "This field is required."
	msgNull        = "This field may not be null."
	msgBlank       = "This field may not be blank."
	msgNotString   = "Not a valid string."
	msgDateFormat  = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgInvalidBody = "Invalid data. Expected a dictionary."

	msgIncorrectType = "Incorrect type. Expected pk value, received %s."
	msgMaxBytes      = "Ensure this field has no more than %d bytes."
)

// DecodeBody parses a JSON object body into raw field values. An empty body
// decodes to an empty object so that required-field errors are reported.
func DecodeBody(data []byte) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		verr := model.NewValidationError()
		verr.Add(model.NonFieldErrors, model.CodeInvalid, msgInvalidBody)
		return nil, verr
	}
	return raw, nil
}

func validate(schema model.Schema, raw map[string]json.RawMessage, mode writeMode) (model.CleanedData, error) {
	cleaned, verr := validateFields(schema, raw, mode)
	if verr.HasErrors() {
		return nil, verr
	}
	return cleaned, nil
}

// validateFields checks raw against schema. Missing fields are required on
// create and update; on partial update only the supplied fields are checked.
// Defaults are applied on create only. The cleaned data holds every field
// that passed, so callers can run further checks before reporting.
func validateFields(schema model.Schema, raw map[string]json.RawMessage, mode writeMode) (model.CleanedData, *model.ValidationError) {
	cleaned := model.CleanedData{}
	verr := model.NewValidationError()

	for _, f := range schema.Fields {
		value, present := raw[f.Name]
		if !present {
			switch {
			case mode == modePartial:
			case f.Required:
				verr.Add(f.Name, model.CodeRequired, msgRequired)
			case mode == modeCreate && f.Default != nil:
				cleaned[f.Name] = f.Default
			}
			continue
		}

		if isJSONNull(value) {
			if !f.Nullable {
				verr.Add(f.Name, model.CodeNull, msgNull)
				continue
			}
			cleaned[f.Name] = nil
			continue
		}

		if f.Kind == model.FieldRef {
			id, ok := parseRef(value)
			if !ok {
				verr.Add(f.Name, model.CodeInvalid, fmt.Sprintf(msgIncorrectType, jsonTypeName(value)))
				continue
			}
			cleaned[f.Name] = id
			continue
		}

		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			verr.Add(f.Name, model.CodeInvalid, msgNotString)
			continue
		}
		if !f.KeepWhitespace {
			s = strings.TrimSpace(s)
		}

		if f.Kind == model.FieldDate {
			if s == "" && f.Nullable {
				cleaned[f.Name] = nil
				continue
			}
			d, err := model.ParseDate(s)
			if err != nil {
				verr.Add(f.Name, model.CodeInvalid, msgDateFormat)
				continue
			}
			cleaned[f.Name] = d
			continue
		}

		if s == "" && !f.AllowBlank {
			verr.Add(f.Name, model.CodeBlank, msgBlank)
			continue
		}
		if f.Kind == model.FieldChoice && !f.Choices.Contains(s) {
			verr.Add(f.Name, model.CodeInvalidChoice, fmt.Sprintf("%q is not a valid choice.", s))
			continue
		}
		if f.MinLength > 0 && utf8.RuneCountInString(s) < f.MinLength {
			verr.Add(f.Name, model.CodeMinLength, fmt.Sprintf("Ensure this field has at least %d characters.", f.MinLength))
			continue
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
			verr.Add(f.Name, model.CodeMaxLength, fmt.Sprintf("Ensure this field has no more than %d characters.", f.MaxLength))
			continue
		}
		if f.MaxBytes > 0 && len(s) > f.MaxBytes {
			verr.Add(f.Name, model.CodeMaxLength, fmt.Sprintf(msgMaxBytes, f.MaxBytes))
			continue
		}
		cleaned[f.Name] = s
	}

	return cleaned, verr
}

// parseRef accepts a primary key as a JSON number or a numeric string.
func parseRef(value json.RawMessage) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	var digits string
	switch t := v.(type) {
	case json.Number:
		digits = t.String()
	case string:
		digits = strings.TrimSpace(t)
	default:
		return 0, false
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func jsonTypeName(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return "null"
	}
	switch trimmed[0] {
	case '"':
		return "str"
	case '{':
		return "dict"
	case '[':
		return "list"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// checkRef records a does_not_exist error when the row referenced by field
// cannot be loaded with get.
func checkRef[T any](ctx context.Context, verr *model.ValidationError, data model.CleanedData, field string, get func(context.Context, int64) (T, error)) error {
	id, ok := data.Int64(field)
	if !ok {
		return nil
	}
	if _, err := get(ctx, id); err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return err
		}
		verr.Add(field, model.CodeDoesNotExist, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return nil
}

// storeErr maps storage errors onto service errors.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, db.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, db.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}

package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is the first violated field of a payload, with a message safe to show users.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

var (
	messagesMu sync.RWMutex
	// messages maps "<Struct>.<jsonField>" (optionally suffixed ".<tag>") to a user-facing message
	messages = map[string]string{}
)

// RegisterMessages adds user-facing messages. Keys are "<Struct>.<field>" or
// "<Struct>.<field>.<tag>"; the tag-specific key wins.
func RegisterMessages(m map[string]string) {
	messagesMu.Lock()
	defer messagesMu.Unlock()
	for k, v := range m {
		messages[k] = v
	}
}

// FirstError converts the result of Validate.Struct into the first violated field.
// Returns nil for a nil error.
func FirstError(err error) *FieldError {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &FieldError{Message: "Invalid input."}
	}

	e := validationErrors[0]
	return &FieldError{
		Field:   e.Field(),
		Message: messageFor(structName(e.Namespace()), e.Field(), e.Tag(), func() string { return formatSingleError(e) }),
	}
}

// FromDecodeError reports a JSON value of the wrong type as a field failure.
// Syntax errors and anything else are not field failures and return false.
func FromDecodeError(err error) (*FieldError, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil, false
	}
	field := typeErr.Field
	return &FieldError{
		Field: field,
		Message: messageFor(typeErr.Struct, field, "type", func() string {
			return fmt.Sprintf("%s has an invalid value.", formatCamelCase(field))
		}),
	}, true
}

// Earliest returns the candidate whose field is declared first in obj's struct
// type. Nil candidates are skipped, fields obj does not declare sort last, and
// ties go to the earlier candidate.
func Earliest(obj interface{}, candidates ...*FieldError) *FieldError {
	var best *FieldError
	bestIndex := 0
	for _, c := range candidates {
		if c == nil {
			continue
		}
		index := fieldIndex(obj, c.Field)
		if best == nil || index < bestIndex {
			best, bestIndex = c, index
		}
	}
	return best
}

// fieldIndex is the declaration index of the top-level field with JSON name path
func fieldIndex(obj interface{}, path string) int {
	name, _, _ := strings.Cut(path, ".")
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return math.MaxInt
	}
	for i := 0; i < t.NumField(); i++ {
		if jsonFieldName(t.Field(i)) == name {
			return i
		}
	}
	return math.MaxInt
}

func messageFor(structName, field, tag string, fallback func() string) string {
	messagesMu.RLock()
	defer messagesMu.RUnlock()

	if msg, ok := messages[structName+"."+field+"."+tag]; ok {
		return msg
	}
	if msg, ok := messages[structName+"."+field]; ok {
		return msg
	}
	return fallback()
}

func structName(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[:i]
	}
	return namespace
}

// formatSingleError formats a single validation error to a generic message
func formatSingleError(e validator.FieldError) string {
	label := formatCamelCase(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters.", label, param)
		}
		return fmt.Sprintf("%s must be at least %s.", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters.", label, param)
		}
		return fmt.Sprintf("%s must be at most %s.", label, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", label)
	case "eq":
		return fmt.Sprintf("%s must be %s.", label, param)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// formatCamelCase converts camelCase to spaced, capitalised words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 {
			result.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}

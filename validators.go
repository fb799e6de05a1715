package parametric

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/reoring/parametric/i18n"
)

// emailPattern is deliberately loose: local part, a domain and a TLD.
var emailPattern = regexp.MustCompile(`(?i)\A[\w+\-.]+@[a-z\d\-]+(\.[a-z]+)*\.[a-z]+\z`)

type requiredValidator struct{}

func (requiredValidator) Valid(key string, _ any, payload map[string]any) bool {
	_, ok := payload[key]
	return ok
}

func (requiredValidator) Message(any) string { return i18n.T(CodeRequired, nil) }

type presentValidator struct{}

func (presentValidator) Valid(_ string, value any, _ map[string]any) bool {
	return !isBlank(value)
}

func (presentValidator) Message(any) string { return i18n.T(CodePresent, nil) }

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// formatValidator matches the string form of the value; nil reads as "".
type formatValidator struct {
	re  *regexp.Regexp
	msg string
}

func (v formatValidator) Valid(_ string, value any, _ map[string]any) bool {
	return v.re.MatchString(toString(value))
}

func (v formatValidator) Message(any) string {
	if v.msg != "" {
		return v.msg
	}
	return i18n.T(CodeInvalidFormat, nil)
}

func (v formatValidator) params(any) map[string]any {
	return map[string]any{"pattern": v.re.String()}
}

// formatFactory builds "format": format(pattern) or format(pattern, message).
// pattern is a string or a *regexp.Regexp.
func formatFactory(args ...any) (Validator, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: format requires a pattern", ErrInvalidArgs)
	}
	var v formatValidator
	switch p := args[0].(type) {
	case *regexp.Regexp:
		v.re = p
	case string:
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: format pattern: %w", ErrInvalidArgs, err)
		}
		v.re = re
	default:
		return nil, fmt.Errorf("%w: format pattern must be a string or *regexp.Regexp, got %T", ErrInvalidArgs, args[0])
	}
	if len(args) > 1 {
		msg, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: format message must be a string", ErrInvalidArgs)
		}
		v.msg = msg
	}
	return v, nil
}

type emailValidator struct{ formatValidator }

func (emailValidator) Message(any) string { return i18n.T(CodeInvalidEmail, nil) }

// gtValidator compares the integer parts of both sides; non-numeric values
// count as zero.
type gtValidator struct{ num float64 }

func (v gtValidator) Valid(_ string, value any, _ map[string]any) bool {
	f, _ := toFloat(value)
	return math.Trunc(f) > math.Trunc(v.num)
}

func (v gtValidator) Message(value any) string {
	return i18n.T(CodeTooSmall, map[string]string{"num": toString(v.num), "got": toString(value)})
}

func (v gtValidator) params(value any) map[string]any {
	return map[string]any{"num": v.num, "got": value}
}

func gtFactory(args ...any) (Validator, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: gt requires one number", ErrInvalidArgs)
	}
	n, ok := toFloat(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: gt argument %v is not a number", ErrInvalidArgs, args[0])
	}
	return gtValidator{num: n}, nil
}

// optionsValidator is also an ExistenceGuard: a value outside the set is
// treated as missing, which lets a default take over.
type optionsValidator struct{ options []any }

var _ ExistenceGuard = optionsValidator{}

func (v optionsValidator) Exists(_ map[string]any, _ string, raw any) bool {
	return v.ok(raw)
}

func (v optionsValidator) Valid(_ string, value any, _ map[string]any) bool {
	return v.ok(value)
}

// ok reports whether the value, or every element of a list value, is allowed.
func (v optionsValidator) ok(value any) bool {
	list, isList := value.([]any)
	if !isList {
		return containsValue(v.options, value)
	}
	for _, e := range list {
		if !containsValue(v.options, e) {
			return false
		}
	}
	return true
}

func (v optionsValidator) Message(value any) string {
	return i18n.T(CodeInvalidEnum, map[string]string{"options": joinValues(v.options), "got": toString(value)})
}

func (v optionsValidator) params(value any) map[string]any {
	return map[string]any{"options": v.options, "got": value}
}

// optionsFactory accepts the allowed values as arguments, or a single []any.
func optionsFactory(args ...any) (Validator, error) {
	if len(args) == 1 {
		if list, ok := args[0].([]any); ok {
			args = list
		}
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: options requires at least one value", ErrInvalidArgs)
	}
	return optionsValidator{options: args}, nil
}

type uuidValidator struct{}

func (uuidValidator) Valid(_ string, value any, _ map[string]any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return uuid.Validate(s) == nil
}

func (uuidValidator) Message(value any) string {
	return i18n.T(CodeInvalidUUID, map[string]string{"got": toString(value)})
}

func registerBuiltinValidators(r *Registry) {
	r.RegisterValidator(CodeRequired, ValidatorInstance(requiredValidator{})).
		RegisterValidator(CodePresent, ValidatorInstance(presentValidator{})).
		RegisterValidator(CodeInvalidFormat, formatFactory).
		RegisterValidator(CodeInvalidEmail, ValidatorInstance(emailValidator{formatValidator{re: emailPattern}})).
		RegisterValidator(CodeTooSmall, gtFactory).
		RegisterValidator(CodeInvalidEnum, optionsFactory).
		RegisterValidator(CodeInvalidUUID, ValidatorInstance(uuidValidator{}))
}

package validator

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: map[string]string{}}
}

func (v *Validator) CheckError(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

// AddFieldError keeps the first message recorded for a key.
func (v *Validator) AddFieldError(key, message string) {
	_, exists := v.Errors[key]
	if !exists {
		v.Errors[key] = message
	}
}

// Err folds the recorded errors into one error, ordered by key, or returns nil.
func (v *Validator) Err() error {
	if v.IsValid() {
		return nil
	}

	keys := make([]string, 0, len(v.Errors))
	for key := range v.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, v.Errors[key]))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, "; "))
}

func InRange(val, min, max int) bool {
	return val >= min && val <= max
}

func PermittedValue[T comparable](val T, permittedValues ...T) bool {
	for _, permitted := range permittedValues {
		if val == permitted {
			return true
		}
	}

	return false
}

// IsOrigin reports whether val is a bare scheme://host[:port] origin.
func IsOrigin(val string) bool {
	u, err := url.Parse(val)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" &&
		(u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == ""
}

func Unique[T comparable](vals []T) bool {
	uniqueValues := map[T]struct{}{}

	for _, val := range vals {
		if _, ok := uniqueValues[val]; ok {
			return false
		}

		uniqueValues[val] = struct{}{}
	}

	return true
}

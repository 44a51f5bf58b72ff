package web

import (
	"fmt"
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

func newComparisonValidator(valueInClosure int64, compareFn func(argValue, closedValue int64) bool) ParamValidator {
	return func(argValue int64) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue >= closedValue
	})
}

// ParamError reports a query parameter that is not an acceptable number.
type ParamError struct {
	Key   string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("Invalid %s number: %s", e.Key, e.Value)
}

// QueryInt32Gte reads an optional integer query parameter that must be >= minValue.
// An absent or empty parameter yields def.
func QueryInt32Gte(r *http.Request, key string, def int32, minValue int64) (int32, error) {
	return queryInt32(r, key, def, gte(minValue))
}

func queryInt32(r *http.Request, key string, def int32, pValidator ParamValidator) (int32, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		return 0, &ParamError{Key: key, Value: value}
	}
	return int32(intValue), nil
}

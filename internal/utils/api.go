package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ExtractIDFromParams retrieves a path parameter value from the request and
// removes file extensions like ".json" or ".png".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	rawID := r.PathValue(paramName)
	if i := strings.LastIndex(rawID, "."); i >= 0 {
		return rawID[:i]
	}
	return rawID
}

// ParseIntParam retrieves an integer value from the provided URL query parameters.
// If the key is not present, it returns the fallback. If the value is invalid,
// it returns the fallback and updates the fieldErrors map.
func ParseIntParam(params url.Values, key string, fallback int, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return fallback, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return fallback, fieldErrors
	}
	return n, fieldErrors
}

// ParseYearListParam parses a comma separated list of years, e.g. "2015,2017".
// An empty parameter yields a nil slice, which callers treat as "all years".
func ParseYearListParam(params url.Values, key string, fieldErrors map[string][]string) ([]int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return nil, fieldErrors
	}

	parts := strings.Split(val, ",")
	years := make([]int, 0, len(parts))
	for _, part := range parts {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
			return nil, fieldErrors
		}
		years = append(years, year)
	}
	return years, fieldErrors
}

// ParseChoiceParam ensures a query parameter takes one of the allowed values.
// An empty parameter yields the first allowed value as the default.
func ParseChoiceParam(params url.Values, key string, allowed []string, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return allowed[0], fieldErrors
	}

	for _, choice := range allowed {
		if val == choice {
			return val, fieldErrors
		}
	}

	fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	return allowed[0], fieldErrors
}

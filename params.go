package twython

import (
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// normalizeParams flattens heterogeneous parameter values into wire-ready
// form values plus a separate set of file payloads. Every key lands in
// exactly one of the two maps:
//
//   - bools become the lowercase strings "true"/"false"
//   - non-string slices are stringified element-wise and comma-joined
//   - io.Reader values are diverted into the files map
//   - everything else is stringified as-is
func normalizeParams(params Params) (url.Values, map[string]io.Reader) {
	encoded := url.Values{}
	files := map[string]io.Reader{}

	for key, value := range params {
		switch v := value.(type) {
		case bool:
			encoded.Set(key, strconv.FormatBool(v))
		case io.Reader:
			files[key] = v
		case string:
			encoded.Set(key, v)
		case []byte:
			encoded.Set(key, string(v))
		case []string:
			encoded.Set(key, strings.Join(v, ","))
		default:
			encoded.Set(key, stringifyValue(v))
		}
	}
	return encoded, files
}

// stringifyValue renders a single parameter value, comma-joining any
// remaining slice types (e.g. []int, []any).
func stringifyValue(value any) string {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Sprint(value)
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return strings.Join(parts, ",")
}

// BuildURL constructs an encoded API URL from a base endpoint URL and
// parameters, normalizing values first. File payloads do not belong in a URL
// and are dropped.
func BuildURL(apiURL string, params Params) string {
	encoded, _ := normalizeParams(params)
	if len(encoded) == 0 {
		return apiURL
	}
	return apiURL + "?" + encoded.Encode()
}

package storage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var paramRe = regexp.MustCompile(`\?(\d+)`)

// Render substitutes a query's parameters into its SQL text, producing a
// statement the remote adapter can submit verbatim. Strings are
// single-quoted with embedded quotes doubled; booleans render as 1/0;
// nil renders as NULL. Parameter values here come from parsed JSON whose
// only free-form field, the description, has been HTML-sanitized.
func Render(q Query) (string, error) {
	var renderErr error

	rendered := paramRe.ReplaceAllStringFunc(q.SQL, func(match string) string {
		index, err := strconv.Atoi(match[1:])
		if err != nil || index < 1 || index > len(q.Params) {
			renderErr = fmt.Errorf("parameter %s out of range (have %d params)", match, len(q.Params))
			return match
		}
		value, err := renderValue(q.Params[index-1])
		if err != nil {
			renderErr = err
			return match
		}
		return value
	})

	if renderErr != nil {
		return "", renderErr
	}
	return rendered, nil
}

func renderValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'", nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported parameter type %T", v)
	}
}

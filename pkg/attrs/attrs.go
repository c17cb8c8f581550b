// Package attrs reads values back out of slog-style key/value argument lists.
package attrs

import "fmt"

// Lookup returns the value paired with key in kv and whether it was present.
// Values that are not strings are rendered with fmt.
func Lookup(kv []any, key string) (string, bool) {
	for i := 0; i+1 < len(kv); i += 2 {
		if k, _ := kv[i].(string); k != key {
			continue
		}
		switch v := kv[i+1].(type) {
		case string:
			return v, true
		case fmt.Stringer:
			return v.String(), true
		default:
			return fmt.Sprint(v), true
		}
	}
	return "", false
}

// String is Lookup without the presence flag.
func String(kv []any, key string) string {
	v, _ := Lookup(kv, key)
	return v
}

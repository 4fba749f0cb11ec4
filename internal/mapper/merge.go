package mapper

import "strings"

// field copies one entity field from a decoded payload when the payload
// carries any of keys.
type field[T any] struct {
	keys []string
	copy func(dst *T, src T)
}

// Has reports whether any of keys holds a value. Null and blank strings
// count as absent.
func (o Object) Has(keys ...string) bool {
	for _, key := range keys {
		v, ok := lookupPath(o.raw, key)
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return true
	}
	return false
}

// overlay starts from base and takes from decoded only the fields present
// in o, so defaults a partial payload decodes to never replace known values.
func overlay[T any](base, decoded T, o Object, fields []field[T]) T {
	for _, f := range fields {
		if o.Has(f.keys...) {
			f.copy(&base, decoded)
		}
	}
	return base
}

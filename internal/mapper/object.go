// Package mapper converts loosely shaped backend payloads into the
// canonical entities of internal/model.
//
// Every mapper is total: malformed or missing fields degrade to typed
// defaults and are reported as anomalies on the returned Result instead of
// failing the decode.
package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Result is the outcome of decoding one entity.
type Result[T any] struct {
	Value     T
	Anomalies []string
}

func (r Result[T]) Clean() bool {
	return len(r.Anomalies) == 0
}

// Logged reports anomalies at debug level and returns the value.
func (r Result[T]) Logged(log *zap.SugaredLogger, entity string) T {
	if log != nil && len(r.Anomalies) > 0 {
		log.Debugw("decode anomaly", "entity", entity, "fields", r.Anomalies)
	}
	return r.Value
}

// Object reads fields from a decoded JSON object through key priority chains.
type Object struct {
	raw       map[string]interface{}
	prefix    string
	anomalies *[]string
}

func NewObject(raw map[string]interface{}) Object {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return Object{raw: raw, anomalies: &[]string{}}
}

// Child returns a nested object sharing the parent's anomaly list.
func (o Object) Child(raw map[string]interface{}, name string) Object {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return Object{raw: raw, prefix: o.prefix + name + ".", anomalies: o.anomalies}
}

func (o Object) Raw() map[string]interface{} {
	return o.raw
}

func (o Object) Anomalies() []string {
	if o.anomalies == nil {
		return nil
	}
	return append([]string(nil), (*o.anomalies)...)
}

// Note records a defaulted or malformed field.
func (o Object) Note(field, reason string) {
	if o.anomalies == nil {
		return
	}
	*o.anomalies = append(*o.anomalies, fmt.Sprintf("%s%s: %s", o.prefix, field, reason))
}

// Lookup returns the first non-nil value among keys. Dotted keys descend into
// nested objects.
func (o Object) Lookup(keys ...string) (interface{}, string, bool) {
	for _, key := range keys {
		if v, ok := lookupPath(o.raw, key); ok && v != nil {
			return v, key, true
		}
	}
	return nil, "", false
}

func lookupPath(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	nested, ok := m[head].(map[string]interface{})
	if !ok {
		return nil, false
	}
	return lookupPath(nested, rest)
}

// String returns the first non-blank scalar among keys, trimmed.
func (o Object) String(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := lookupPath(o.raw, key)
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			o.Note(key, "expected scalar")
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			o.Note(key, "not a string")
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

func (o Object) StringOr(def string, keys ...string) string {
	if s, ok := o.String(keys...); ok {
		return s
	}
	return def
}

func (o Object) OptString(keys ...string) *string {
	if s, ok := o.String(keys...); ok {
		return &s
	}
	return nil
}

// ID reads an identifier that may arrive as a number or a string.
func (o Object) ID(keys ...string) (string, bool) {
	v, key, ok := o.Lookup(keys...)
	if !ok {
		return "", false
	}
	if f, isFloat := v.(float64); isFloat && f == float64(int64(f)) {
		return cast.ToString(int64(f)), true
	}
	if nested, isMap := v.(map[string]interface{}); isMap {
		return o.Child(nested, key).ID("id")
	}
	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		o.Note(key, "invalid id")
		return "", false
	}
	return strings.TrimSpace(s), true
}

func (o Object) OptID(keys ...string) *string {
	if id, ok := o.ID(keys...); ok {
		return &id
	}
	return nil
}

func (o Object) Int(def int, keys ...string) int {
	v, key, ok := o.Lookup(keys...)
	if !ok {
		return def
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
		if v == "" {
			return def
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		o.Note(key, "not a number")
		return def
	}
	return int(f)
}

// Bool reads a boolean-ish flag, falling back to def.
func (o Object) Bool(def bool, keys ...string) bool {
	v, key, ok := o.Lookup(keys...)
	if !ok {
		return def
	}
	b, known := ParseBool(v)
	if !known {
		o.Note(key, "unrecognized boolean")
		return def
	}
	return b
}

// Time parses a date field. Invalid values collapse to nil.
func (o Object) Time(keys ...string) *time.Time {
	v, key, ok := o.Lookup(keys...)
	if !ok {
		return nil
	}
	t, valid := ParseTime(v)
	if !valid {
		o.Note(key, "invalid date")
		return nil
	}
	return &t
}

// TimeOrNow parses a structurally required date, using the current time
// when it is missing or invalid.
func (o Object) TimeOrNow(keys ...string) time.Time {
	if t := o.Time(keys...); t != nil {
		return *t
	}
	return time.Now()
}

func (o Object) Object(keys ...string) (Object, bool) {
	for _, key := range keys {
		if v, ok := lookupPath(o.raw, key); ok {
			if m, isMap := v.(map[string]interface{}); isMap {
				return o.Child(m, key), true
			}
		}
	}
	return Object{}, false
}

// Records returns the objects of the first list found among keys.
func (o Object) Records(keys ...string) ([]map[string]interface{}, bool) {
	for _, key := range keys {
		v, ok := lookupPath(o.raw, key)
		if !ok || v == nil {
			continue
		}
		list, isList := v.([]interface{})
		if !isList {
			o.Note(key, "expected list")
			continue
		}
		out := make([]map[string]interface{}, 0, len(list))
		for _, item := range list {
			if m, isMap := item.(map[string]interface{}); isMap {
				out = append(out, m)
			}
		}
		return out, true
	}
	return nil, false
}

// IDList reads a list of identifiers given either as scalars or as objects
// carrying one of idKeys.
func (o Object) IDList(idKeys []string, keys ...string) []string {
	out := []string{}
	for _, key := range keys {
		v, ok := lookupPath(o.raw, key)
		if !ok || v == nil {
			continue
		}
		list, isList := v.([]interface{})
		if !isList {
			o.Note(key, "expected list")
			continue
		}
		for i, item := range list {
			if m, isMap := item.(map[string]interface{}); isMap {
				if id, found := o.Child(m, fmt.Sprintf("%s[%d]", key, i)).ID(idKeys...); found {
					out = append(out, id)
				}
				continue
			}
			holder := o.Child(map[string]interface{}{"id": item}, fmt.Sprintf("%s[%d]", key, i))
			if id, found := holder.ID("id"); found {
				out = append(out, id)
			}
		}
		return out
	}
	return out
}

// Labels reads a list of strings, accepting objects carrying one of labelKeys.
func (o Object) Labels(labelKeys []string, keys ...string) []string {
	for _, key := range keys {
		v, ok := lookupPath(o.raw, key)
		if !ok || v == nil {
			continue
		}
		list, isList := v.([]interface{})
		if !isList {
			o.Note(key, "expected list")
			continue
		}
		out := make([]string, 0, len(list))
		for i, item := range list {
			var label string
			if m, isMap := item.(map[string]interface{}); isMap {
				label, _ = o.Child(m, fmt.Sprintf("%s[%d]", key, i)).String(labelKeys...)
			} else {
				label = strings.TrimSpace(cast.ToString(item))
			}
			if label != "" {
				out = append(out, label)
			}
		}
		return out
	}
	return nil
}

// ParseBool accepts native, numeric and localized string booleans.
func ParseBool(v interface{}) (value bool, known bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch Fold(b) {
		case "true", "1", "si", "yes", "y", "s", "activo", "activa", "active", "verdadero", "on", "habilitado":
			return true, true
		case "false", "0", "no", "n", "inactivo", "inactiva", "inactive", "falso", "off", "deshabilitado":
			return false, true
		}
		return false, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return false, false
	}
	return f != 0, true
}

// ParseTime accepts ISO strings, common date layouts and epoch milliseconds.
func ParseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case float64:
		return time.UnixMilli(int64(t)), true
	case int64:
		return time.UnixMilli(t), true
	case int:
		return time.UnixMilli(int64(t)), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		parsed, err := cast.ToTimeE(s)
		if err != nil || parsed.IsZero() {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

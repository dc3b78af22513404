package logging

import (
	"fmt"
	"reflect"
	"sort"
)

// MaxDepth is the maximum number of nested mapping levels that Flatten
// expands.
const MaxDepth = 7

// TruncatedKey is the key suffix of the field replacing data nested deeper than
// MaxDepth.
const TruncatedKey = "TRUNCATED"

var truncatedMessage = fmt.Sprintf("data nested deeper than %d levels has been truncated", MaxDepth)

// Flatten turns the given possibly nested Fields into flat ones. Keys of nested
// mappings are joined with a dot. A branch nested deeper than MaxDepth is
// replaced by a single <prefix>.TRUNCATED field. Leaf values are copied as-is.
func Flatten(fields Fields) Fields {
	flat := make(Fields, 0, len(fields))
	flatten(&flat, fields, "", 1)
	return flat
}

func flatten(out *Fields, fields Fields, prefix string, depth int) {
	if depth > MaxDepth {
		out.Set(prefix+TruncatedKey, truncatedMessage)
		return
	}
	for _, field := range fields {
		key := prefix + field.Key
		if nested, ok := mappingEntries(field.Value); ok {
			flatten(out, nested, key+".", depth+1)
			continue
		}
		out.Set(key, field.Value)
	}
}

// mappingEntries returns the entries of the given value if it is a mapping.
// Supported are Fields, map[string]any and any other map with keys of string
// kind. Entries of maps are returned in ascending key order.
func mappingEntries(value any) (Fields, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case Fields:
		return v, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make(Fields, 0, len(v))
		for _, k := range keys {
			entries = append(entries, Field{Key: k, Value: v[k]})
		}
		return entries, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	entries := make(Fields, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Field{Key: k.String(), Value: rv.MapIndex(k).Interface()})
	}
	return entries, true
}

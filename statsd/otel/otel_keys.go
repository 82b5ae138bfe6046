package otel

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// instrumentKey appends the attribute values to the instrument name as
// dotted segments, in attribute key order. StatsD has no tags, so
// name=http.requests with {method=GET, code=200} becomes
// http.requests.200.GET. Dots inside a value would split it, they become
// underscores. Empty values are skipped.
func instrumentKey(name string, attrs attribute.Set) string {
	if attrs.Len() == 0 {
		return name
	}

	var b strings.Builder
	b.WriteString(name)
	iter := attrs.Iter()
	for iter.Next() {
		value := iter.Attribute().Value.Emit()
		if value == "" {
			continue
		}
		b.WriteByte('.')
		b.WriteString(strings.ReplaceAll(value, ".", "_"))
	}
	return b.String()
}

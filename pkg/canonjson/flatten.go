package canonjson

import (
	"sort"
	"strconv"
)

// Flatten maps every scalar of n to a dotted path. Array items use their
// index as the path segment.
func Flatten(n Node) map[string]string {
	out := make(map[string]string)
	flatten(out, "", n)
	return out
}

func flatten(out map[string]string, prefix string, n Node) {
	switch v := n.(type) {
	case *Object:
		for _, m := range v.Members {
			flatten(out, join(prefix, m.Key), m.Value)
		}
	case *Array:
		for i, item := range v.Items {
			flatten(out, join(prefix, strconv.Itoa(i)), item)
		}
	case String:
		out[prefix] = "s:" + string(v)
	case Number:
		out[prefix] = "n:" + string(v)
	case Bool:
		out[prefix] = "b:" + strconv.FormatBool(bool(v))
	case Null:
		out[prefix] = "null"
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Diff lists the paths whose scalar differs between a and b, sorted.
func Diff(a, b Node) []string {
	fa, fb := Flatten(a), Flatten(b)
	var changed []string
	for k, va := range fa {
		if vb, ok := fb[k]; !ok || va != vb {
			changed = append(changed, k)
		}
	}
	for k := range fb {
		if _, ok := fa[k]; !ok {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}

// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package types derives stable, lowercased metric key names from runtime Go
// types. Actor classes and message types are keyed by these names, so the
// derivation must be deterministic and must never fail: unresolvable input
// falls back to the Unknown bucket instead of panicking.
package types

import (
	"reflect"
	"strings"
)

// Unknown is the bucket name used whenever a type or name cannot be resolved.
const Unknown = "unknown"

// NameOf returns the lowercased, package-qualified type name of v, e.g.
// "mypkg.order" for both mypkg.Order and *mypkg.Order. A nil value or a nil
// typed pointer whose type cannot be resolved yields Unknown.
func NameOf(v any) string {
	rtype := reflectType(v)
	if rtype == nil {
		return Unknown
	}
	return lowTrim(rtype.String())
}

// SimpleNameOf returns the lowercased bare type name of v without its package
// qualifier, e.g. "order" for *mypkg.Order. Unnamed types fall back to their
// full type string; a nil value yields Unknown.
func SimpleNameOf(v any) string {
	rtype := reflectType(v)
	if rtype == nil {
		return Unknown
	}
	if name := rtype.Name(); name != "" {
		return lowTrim(name)
	}
	return lowTrim(rtype.String())
}

// NormalizeName lowercases and trims a caller-supplied name. Names that are
// empty after trimming collapse to Unknown so that malformed input still lands
// in an observable bucket.
func NormalizeName(name string) string {
	normalized := lowTrim(name)
	if normalized == "" {
		return Unknown
	}
	return normalized
}

// reflectType returns the runtime type of v, dereferencing a single pointer
// level. Passing a reflect.Type uses it directly.
func reflectType(v any) reflect.Type {
	switch t := v.(type) {
	case reflect.Type:
		return t
	default:
		rtype := reflect.TypeOf(v)
		if rtype == nil {
			return nil
		}
		if rtype.Kind() == reflect.Ptr {
			rtype = rtype.Elem()
		}
		return rtype
	}
}

// lowTrim trims any space and lowers the string value
func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphostreflect

import (
	"reflect"
)

// Safe returns candidate if it holds a usable value, def otherwise.  Nil
// pointers, nil funcs, nil maps and nil interfaces are all considered unusable.
//
// Factories use this to fall back to their defaults when an option was
// given a nil strategy:
//
//	var sf apphosthttp.ServerFactory // nil
//	sf = Safe[apphosthttp.ServerFactory](sf, apphosthttp.ServerConfig{})
func Safe[T any](candidate, def T) T {
	cv := reflect.ValueOf(candidate)
	if !cv.IsValid() {
		return def
	}

	switch cv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		if cv.IsNil() {
			return def
		}
	}

	return candidate
}

// PackagePath returns the import path of the package that declares v's type.
// Pointer types are dereferenced first.  Unnamed types, such as closures,
// have no package and produce the empty string.
func PackagePath(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil {
		return ""
	}

	return t.PkgPath()
}

// TypeName returns a printable name for v's type, suitable for error messages.
func TypeName(v any) string {
	if t := reflect.TypeOf(v); t != nil {
		return t.String()
	}

	return "<nil>"
}

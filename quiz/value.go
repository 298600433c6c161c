// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// Value is an answer value: either a single string or a list of strings.
// The zero Value is an empty scalar.
type Value struct {
	multi  bool
	scalar string
	list   []string
}

// Scalar returns a single-string value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// Multi returns a list value. The slice is copied.
func Multi(values ...string) Value {
	return Value{multi: true, list: slices.Clone(values)}
}

// IsMulti reports whether v holds a list.
func (v Value) IsMulti() bool {
	return v.multi
}

// String returns the scalar, or the list joined with ", ".
func (v Value) String() string {
	if v.multi {
		return strings.Join(v.list, ", ")
	}
	return v.scalar
}

// List returns a copy of the list. A scalar yields nil.
func (v Value) List() []string {
	if !v.multi {
		return nil
	}
	return slices.Clone(v.list)
}

// Empty reports whether v counts as unanswered: an empty string or an
// empty list.
func (v Value) Empty() bool {
	if v.multi {
		return len(v.list) == 0
	}
	return v.scalar == ""
}

// Equal reports whether two values have the same shape and contents.
func (v Value) Equal(o Value) bool {
	if v.multi != o.multi {
		return false
	}
	if v.multi {
		return slices.Equal(v.list, o.list)
	}
	return v.scalar == o.scalar
}

func (v Value) clone() Value {
	if v.multi {
		return Multi(v.list...)
	}
	return v
}

// emptyFor returns the unanswered value for a question kind.
func emptyFor(k Kind) Value {
	if k == KindMultiChoice {
		return Multi()
	}
	return Scalar("")
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return json.Marshal(v.scalar)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty answer value")
	}
	switch data[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = Multi(list...)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Scalar(s)
		return nil
	}
	return errors.New("answer value must be a string or a list of strings")
}

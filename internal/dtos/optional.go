package dtos

import "encoding/json"

/*
Optional distinguishes the three states a JSON field can be in:

	absent          → Present=false             (inherit the default)
	explicit null   → Present=true, Null=true   (clear the value)
	explicit value  → Present=true, Null=false  (override)

encoding/json only calls UnmarshalJSON for keys that appear in the
payload, so Present flips to true exactly when the caller sent the
field.
*/
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr collapses the three states onto a pointer: nil for explicit
// null, the value otherwise. Callers must check Present first.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// PtrIfPresent returns a pointer to the value only when the caller
// sent a concrete one; absent and explicit null both map to nil.
func (o Optional[T]) PtrIfPresent() *T {
	if !o.Present || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Some builds a present, non-null Optional. Test helper mostly.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

// Null builds a present, explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

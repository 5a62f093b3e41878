// Package canonjson models JSON documents whose member order is significant
// and renders them byte-for-byte deterministically.
package canonjson

import "fmt"

// Node is one value of a document: *Object, *Array, String, Number, Bool or Null.
type Node interface {
	node()
}

// Member is a key/value pair of an Object.
type Member struct {
	Key   string
	Value Node
}

// Object keeps its members in insertion order.
type Object struct {
	Members []Member
}

// Array is a list of nodes. Inline arrays render on a single line even when
// the surrounding document is indented.
type Array struct {
	Items  []Node
	Inline bool
}

// String is a JSON string.
type String string

// Number holds the literal text of a JSON number.
type Number string

// Bool is a JSON boolean.
type Bool bool

// Null is the JSON null literal.
type Null struct{}

func (*Object) node() {}
func (*Array) node()  {}
func (String) node()  {}
func (Number) node()  {}
func (Bool) node()    {}
func (Null) node()    {}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Set appends a member, replacing the value of an existing key in place.
func (o *Object) Set(key string, value Node) *Object {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return o
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
	return o
}

// SetOpt appends the member only when value is non-nil.
func (o *Object) SetOpt(key string, value Node) *Object {
	if value == nil {
		return o
	}
	return o.Set(key, value)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Node, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	for i, m := range o.Members {
		if m.Key == key {
			o.Members = append(o.Members[:i], o.Members[i+1:]...)
			return
		}
	}
}

// Keys lists member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// Len reports the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}

// Strings builds an array of string nodes.
func Strings(values []string, inline bool) *Array {
	items := make([]Node, len(values))
	for i, v := range values {
		items[i] = String(v)
	}
	return &Array{Items: items, Inline: inline}
}

// OptStrings builds an inline array where nil entries become null.
func OptStrings(values ...*string) *Array {
	items := make([]Node, len(values))
	for i, v := range values {
		if v == nil {
			items[i] = Null{}
			continue
		}
		items[i] = String(*v)
	}
	return &Array{Items: items, Inline: true}
}

// TypeName describes a node for error messages.
func TypeName(n Node) string {
	switch n.(type) {
	case *Object:
		return "object"
	case *Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Null:
		return "null"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", n)
	}
}

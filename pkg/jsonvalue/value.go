// Package jsonvalue provides an immutable, order-preserving representation of
// JSON values.
//
// Go maps do not remember insertion order, so documents are decoded into a
// tagged union instead of map[string]interface{}. Object members are
// enumerated the way a JavaScript object built by JSON.parse enumerates its
// keys: array-index keys ("0", "17") first in ascending numeric order, then
// every other key in the order it first appeared in the source text.
package jsonvalue

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

// Kind identifies which JSON type a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase type tag ("object", "array", ...).
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsContainer reports whether values of this kind carry children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	items   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// Number returns a JSON number.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns a JSON array holding items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

// Object returns a JSON object holding members in order, array-index keys
// first. When a key repeats, the last value wins but keeps the position of the
// first occurrence.
func Object(members ...Member) Value {
	ob := newObjectBuilder(len(members))
	for _, m := range members {
		ob.set(m.Key, m.Value)
	}
	return ob.value()
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string payload; empty for non-strings.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Float returns the numeric payload; zero for non-numbers.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Bool returns the boolean payload; false for non-booleans.
func (v Value) Bool() bool {
	return v.kind == KindBoolean && v.boolean
}

// Len returns the number of items or members for containers and zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Item returns the i-th array element.
func (v Value) Item(i int) Value {
	return v.items[i]
}

// MemberAt returns the i-th object member.
func (v Value) MemberAt(i int) Member {
	return v.members[i]
}

// Items returns a copy of the array elements.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return slices.Clone(v.items)
}

// Members returns a copy of the object members in source order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return slices.Clone(v.members)
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether two values are structurally identical, including the
// order of object members.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean:
		return v.boolean == o.boolean
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// objectBuilder accumulates members while collapsing duplicate keys.
type objectBuilder struct {
	members []Member
	index   map[string]int
}

func newObjectBuilder(capacity int) *objectBuilder {
	return &objectBuilder{
		members: make([]Member, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

func (b *objectBuilder) set(key string, val Value) {
	if i, ok := b.index[key]; ok {
		b.members[i].Value = val
		return
	}
	b.index[key] = len(b.members)
	b.members = append(b.members, Member{Key: key, Value: val})
}

func (b *objectBuilder) value() Value {
	members := b.members
	if slices.ContainsFunc(members, isIndexMember) {
		ordered := make([]Member, 0, len(members))
		for _, m := range members {
			if isIndexMember(m) {
				ordered = append(ordered, m)
			}
		}
		slices.SortFunc(ordered, func(a, c Member) int {
			x, _ := arrayIndex(a.Key)
			y, _ := arrayIndex(c.Key)
			return cmp.Compare(x, y)
		})
		for _, m := range members {
			if !isIndexMember(m) {
				ordered = append(ordered, m)
			}
		}
		members = ordered
	}
	return Value{kind: KindObject, members: members}
}

func isIndexMember(m Member) bool {
	_, ok := arrayIndex(m.Key)
	return ok
}

// arrayIndex parses key as a canonical array index: decimal digits without a
// leading zero, below 2^32-1.
func arrayIndex(key string) (uint32, bool) {
	if key == "" || len(key) > 10 || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// Copyright 2025 Toonlite Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dom defines the typed tree produced by parsing TOON text.
package dom

// NodeKind discriminates the variants of a Node.
type NodeKind int

const (
	NullKind NodeKind = iota
	BoolKind
	IntKind
	DoubleKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k NodeKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case DoubleKind:
		return "double"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	}
	return "unknown"
}

// Field is one ordered key/value entry of an object node.
type Field struct {
	Key   string
	Value *Node
}

// Node is a tagged TOON value. Each node owns its children exclusively; the
// tree has no sharing and no cycles.
type Node struct {
	Kind NodeKind

	Bool   bool
	Int    int64
	Double float64
	Str    string

	// Items holds array children, Fields holds object entries. Insertion
	// order is preserved for both.
	Items  []*Node
	Fields []Field
}

func Null() *Node                { return &Node{Kind: NullKind} }
func Bool(v bool) *Node          { return &Node{Kind: BoolKind, Bool: v} }
func Int(v int64) *Node          { return &Node{Kind: IntKind, Int: v} }
func Double(v float64) *Node     { return &Node{Kind: DoubleKind, Double: v} }
func String(v string) *Node      { return &Node{Kind: StringKind, Str: v} }
func Array(items ...*Node) *Node { return &Node{Kind: ArrayKind, Items: items} }

func Object(fields ...Field) *Node {
	return &Node{Kind: ObjectKind, Fields: fields}
}

// Append adds an item to an array node.
func (n *Node) Append(item *Node) {
	n.Items = append(n.Items, item)
}

// Set appends a key/value entry to an object node.
func (n *Node) Set(key string, value *Node) {
	n.Fields = append(n.Fields, Field{Key: key, Value: value})
}

// Get returns the value for key, or nil if absent.
func (n *Node) Get(key string) *Node {
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Remove deletes the entry for key, preserving the order of the remaining
// entries. It reports whether an entry was removed.
func (n *Node) Remove(key string) bool {
	for i, f := range n.Fields {
		if f.Key == key {
			n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the child count for arrays and objects, zero otherwise.
func (n *Node) Len() int {
	switch n.Kind {
	case ArrayKind:
		return len(n.Items)
	case ObjectKind:
		return len(n.Fields)
	}
	return 0
}

// Equals reports deep structural equality.
func (n *Node) Equals(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case NullKind:
		return true
	case BoolKind:
		return n.Bool == other.Bool
	case IntKind:
		return n.Int == other.Int
	case DoubleKind:
		return n.Double == other.Double
	case StringKind:
		return n.Str == other.Str
	case ArrayKind:
		if len(n.Items) != len(other.Items) {
			return false
		}
		for i := range n.Items {
			if !n.Items[i].Equals(other.Items[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(n.Fields) != len(other.Fields) {
			return false
		}
		for i := range n.Fields {
			if n.Fields[i].Key != other.Fields[i].Key {
				return false
			}
			if !n.Fields[i].Value.Equals(other.Fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

package jsondoc

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// NodeKind classifies a tree row.
type NodeKind int

const (
	NodeObject NodeKind = iota
	NodeArray
	NodeScalar
)

// ScalarType tags scalar rows for display styling.
type ScalarType int

const (
	ScalarString ScalarType = iota
	ScalarNumber
	ScalarBool
	ScalarNull
)

// Node is one visible row of the flattened tree.
type Node struct {
	Path       string
	Depth      int
	Key        string
	HasKey     bool // false only at the document root
	Kind       NodeKind
	Collapsed  bool
	ChildCount int

	// Value and Scalar are meaningful when Kind is NodeScalar.
	Value  string
	Scalar ScalarType
}

// BuildTree flattens root into a pre-order display list. A container whose
// path is in collapsed stays listed but its children are skipped. The root
// path is the empty string; object children extend the path with ".key" and
// array children with "[index]".
func BuildTree(root gjson.Result, collapsed map[string]struct{}) []Node {
	var nodes []Node
	visit(root, "", "", false, 0, collapsed, &nodes)
	return nodes
}

func visit(v gjson.Result, key, path string, hasKey bool, depth int, collapsed map[string]struct{}, out *[]Node) {
	switch {
	case v.IsObject():
		var keys, vals []gjson.Result
		v.ForEach(func(k, child gjson.Result) bool {
			keys = append(keys, k)
			vals = append(vals, child)
			return true
		})
		_, isCollapsed := collapsed[path]
		*out = append(*out, Node{
			Path: path, Depth: depth, Key: key, HasKey: hasKey,
			Kind: NodeObject, Collapsed: isCollapsed, ChildCount: len(keys),
		})
		if isCollapsed {
			return
		}
		for i, k := range keys {
			childPath := k.String()
			if path != "" {
				childPath = path + "." + k.String()
			}
			visit(vals[i], k.String(), childPath, true, depth+1, collapsed, out)
		}
	case v.IsArray():
		arr := v.Array()
		_, isCollapsed := collapsed[path]
		*out = append(*out, Node{
			Path: path, Depth: depth, Key: key, HasKey: hasKey,
			Kind: NodeArray, Collapsed: isCollapsed, ChildCount: len(arr),
		})
		if isCollapsed {
			return
		}
		for i, child := range arr {
			childPath := path + "[" + strconv.Itoa(i) + "]"
			visit(child, strconv.Itoa(i), childPath, true, depth+1, collapsed, out)
		}
	default:
		*out = append(*out, Node{
			Path: path, Depth: depth, Key: key, HasKey: hasKey,
			Kind: NodeScalar, Value: scalarText(v), Scalar: scalarType(v),
		})
	}
}

// scalarText keeps the document's own number spelling via Raw.
func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	default:
		return "null"
	}
}

func scalarType(v gjson.Result) ScalarType {
	switch v.Type {
	case gjson.String:
		return ScalarString
	case gjson.Number:
		return ScalarNumber
	case gjson.True, gjson.False:
		return ScalarBool
	default:
		return ScalarNull
	}
}

package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Raw logs are semi-structured: nested maps and lists of event attributes
// whose shape is defined by the node, not by us. The extractor parses them
// into an ordered tree and searches depth-first for the first object holding
// a string value that matches a marker pattern. Matching the *value* rather
// than the key mirrors the log format, which puts semantic markers like
// "code_id" in attribute values.
//
// TODO: switch to structured event-attribute keys once both transports can
// expose decoded events; the free-text log format is not guaranteed stable.

var (
	codeIDPattern          = regexp.MustCompile(".*code_id.*")
	contractAddressPattern = regexp.MustCompile(".*contract_address.*")
)

// TreeKind tags the variants of a raw-log tree node.
type TreeKind int

const (
	ScalarNode TreeKind = iota
	SequenceNode
	MappingNode
)

// Tree is one node of a parsed raw log. Exactly one variant is populated,
// selected by Kind. Mapping fields keep the original key order so the search
// is deterministic.
type Tree struct {
	Kind TreeKind

	// Scalar
	Str      string
	IsString bool

	// Sequence
	Items []*Tree

	// Mapping
	Fields []Field
}

// Field is one key/value entry of a mapping node.
type Field struct {
	Key   string
	Value *Tree
}

// field returns the value of the first entry with the given key.
func (t *Tree) field(key string) (*Tree, bool) {
	if t == nil || t.Kind != MappingNode {
		return nil, false
	}
	for _, f := range t.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// parseTree decodes JSON into a Tree, preserving mapping key order. The
// stock unmarshaler would lose it, so the token stream is walked directly.
func parseTree(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	t, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing raw log: %w", err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing raw log: trailing data after value: %v", tok)
	}
	return t, nil
}

func parseValue(dec *json.Decoder) (*Tree, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node := &Tree{Kind: MappingNode}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				node.Fields = append(node.Fields, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return node, nil
		case '[':
			node := &Tree{Kind: SequenceNode}
			for dec.More() {
				item, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				node.Items = append(node.Items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return node, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return &Tree{Kind: ScalarNode, Str: v, IsString: true}, nil
	case json.Number:
		return &Tree{Kind: ScalarNode, Str: v.String()}, nil
	case bool:
		return &Tree{Kind: ScalarNode, Str: strconv.FormatBool(v)}, nil
	case nil:
		return &Tree{Kind: ScalarNode}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// findFirstMatch returns the first mapping node, in depth-first traversal
// order, holding a string value that matches re. Within a mapping each entry
// is tested before its subtree is descended into. Returns nil when nothing
// matches.
func findFirstMatch(t *Tree, re *regexp.Regexp) *Tree {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case SequenceNode:
		for _, item := range t.Items {
			if res := findFirstMatch(item, re); res != nil {
				return res
			}
		}
	case MappingNode:
		for _, f := range t.Fields {
			if f.Value.Kind == ScalarNode && f.Value.IsString && re.MatchString(f.Value.Str) {
				return t
			}
			if res := findFirstMatch(f.Value, re); res != nil {
				return res
			}
		}
	}
	return nil
}

// ExtractCodeID pulls the chain-assigned code id out of a store-code
// confirmation's raw log. A confirmed transaction without the marker means
// the node speaks an incompatible log format, which is fatal.
func ExtractCodeID(rawLog string) (uint64, error) {
	tree, err := parseTree([]byte(rawLog))
	if err != nil {
		return 0, &MalformedResponseError{What: "code id", RawLog: rawLog, Cause: err}
	}
	node := findFirstMatch(tree, codeIDPattern)
	if node == nil {
		return 0, &MalformedResponseError{What: "code id", RawLog: rawLog}
	}
	value, ok := node.field("value")
	if !ok {
		return 0, &MalformedResponseError{What: "code id", RawLog: rawLog}
	}
	codeID, err := strconv.ParseUint(value.Str, 10, 64)
	if err != nil {
		return 0, &MalformedResponseError{What: "code id", RawLog: rawLog, Cause: err}
	}
	return codeID, nil
}

// ExtractContractAddress pulls the new contract's address out of an
// instantiate confirmation's raw log and sanity-checks its format.
func ExtractContractAddress(rawLog string) (string, error) {
	tree, err := parseTree([]byte(rawLog))
	if err != nil {
		return "", &MalformedResponseError{What: "contract address", RawLog: rawLog, Cause: err}
	}
	node := findFirstMatch(tree, contractAddressPattern)
	if node == nil {
		return "", &MalformedResponseError{What: "contract address", RawLog: rawLog}
	}
	value, ok := node.field("value")
	if !ok || !ValidateAddressFormat(value.Str, "") {
		return "", &MalformedResponseError{What: "contract address", RawLog: rawLog}
	}
	return value.Str, nil
}

// ValidateAddressFormat reports whether address is a prefixed 39-character
// lowercase-alphanumeric account address. prefix is a regular-expression
// fragment; empty means any lowercase prefix.
func ValidateAddressFormat(address, prefix string) bool {
	if prefix == "" {
		prefix = "[a-z]+"
	}
	re, err := regexp.Compile("^" + prefix + "[0-9a-z]{39}$")
	if err != nil {
		return false
	}
	return re.MatchString(address)
}

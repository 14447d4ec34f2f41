// Package jsonpatch computes the RFC 6902 operations between two snapshots
// of a response set, so a remote renderer only redraws what changed.
package jsonpatch

import (
	"bytes"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

type Op struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Diff returns the operations turning before into after. Both values must
// marshal to JSON objects; nested values are compared as whole documents.
// The result is sorted by path.
func Diff(before, after interface{}) ([]Op, error) {
	a, err := fields(before)
	if err != nil {
		return nil, err
	}
	b, err := fields(after)
	if err != nil {
		return nil, err
	}

	var ops []Op
	for k := range a {
		if _, ok := b[k]; !ok {
			ops = append(ops, Op{Op: "remove", Path: "/" + escapeKey(k)})
		}
	}
	for k, bv := range b {
		av, ok := a[k]
		switch {
		case !ok:
			ops = append(ops, Op{Op: "add", Path: "/" + escapeKey(k), Value: bv})
		case !equal(av, bv):
			ops = append(ops, Op{Op: "replace", Path: "/" + escapeKey(k), Value: bv})
		}
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].Path < ops[j].Path })
	return ops, nil
}

func fields(v interface{}) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// equal compares two raw values after compacting whitespace.
func equal(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if err := json.Compact(&ca, a); err != nil {
		return bytes.Equal(a, b)
	}
	if err := json.Compact(&cb, b); err != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}

// escapeKey escapes a JSON Pointer reference token per RFC 6901.
func escapeKey(k string) string {
	k = strings.ReplaceAll(k, "~", "~0")
	k = strings.ReplaceAll(k, "/", "~1")
	return k
}

package inequality

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoData is returned when a certificate has no top-level "data" array.
var ErrNoData = errors.New(`certificate has no "data" array`)

// NodeText is the raw inequality text of one node.
type NodeText struct {
	Key  string
	Text string
}

// ReadCertificate decodes a parameter-graph certificate:
//
//	{"data": [{"<node>": "<chains>", ...}, ...]}
//
// Line breaks are removed before decoding because the producer wraps long
// lines inside string values. Nodes keep the order of their first
// appearance; a node repeated later takes the later text.
func ReadCertificate(r io.Reader) ([]NodeText, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	raw = bytes.ReplaceAll(raw, []byte("\r"), nil)
	raw = bytes.ReplaceAll(raw, []byte("\n"), nil)

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var nodes []NodeText
	found := false
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("certificate: skip %q: %w", key, err)
			}
			continue
		}
		found = true
		if nodes, err = readData(dec); err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoData
	}
	if nodes == nil {
		nodes = []NodeText{}
	}
	return nodes, nil
}

func readData(dec *json.Decoder) ([]NodeText, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var nodes []NodeText
	index := map[string]int{}
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			key, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			var text string
			if err := dec.Decode(&text); err != nil {
				return nil, fmt.Errorf("certificate: node %q: %w", key, err)
			}
			if i, seen := index[key]; seen {
				nodes[i].Text = text
				continue
			}
			index[key] = len(nodes)
			nodes = append(nodes, NodeText{Key: key, Text: text})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return nodes, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("certificate: expected %q: %w", want, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("certificate: expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("certificate: read key: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("certificate: expected key, got %v", tok)
	}
	return key, nil
}

// FromCertificate normalizes every node's text. Diagnostics carry the
// node key of the dropped chain.
func FromCertificate(nodes []NodeText) ([]NodeSet, []Diagnostic) {
	sets := make([]NodeSet, 0, len(nodes))
	var diags []Diagnostic
	for _, n := range nodes {
		ineqs, ds := Normalize(n.Text)
		for _, d := range ds {
			d.Node = n.Key
			diags = append(diags, d)
		}
		sets = append(sets, NodeSet{Key: n.Key, Inequalities: ineqs})
	}
	return sets, diags
}

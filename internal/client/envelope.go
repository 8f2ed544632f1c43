package client

import (
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	// DefaultDataPath locates the items of a list response.
	DefaultDataPath = "data"

	// DefaultTotalPath locates the match count of a list response.
	DefaultTotalPath = "total"
)

// Envelope represents a decoded list response.
type Envelope struct {
	Items []map[string]any
	Total int

	// HasTotal is false when the response carried no count.
	HasTotal bool
}

// DecodeList extracts the items and total from a list response. A bare array
// is taken as the full item set.
func DecodeList(url string, body []byte, dataPath, totalPath string) (Envelope, error) {
	if !gjson.ValidBytes(body) {
		return Envelope{}, &DecodeError{URL: url, Reason: "invalid JSON"}
	}
	if dataPath == "" {
		dataPath = DefaultDataPath
	}
	if totalPath == "" {
		totalPath = DefaultTotalPath
	}

	root := gjson.ParseBytes(body)
	data := root
	if !root.IsArray() {
		data = root.Get(dataPath)
		if !data.Exists() {
			return Envelope{}, &DecodeError{URL: url, Reason: fmt.Sprintf("no items at %q", dataPath)}
		}
	}
	if !data.IsArray() {
		return Envelope{}, &DecodeError{URL: url, Reason: fmt.Sprintf("items at %q is not an array", dataPath)}
	}

	rr := data.Array()
	env := Envelope{Items: make([]map[string]any, 0, len(rr))}
	for i, r := range rr {
		m, ok := r.Value().(map[string]any)
		if !ok {
			return Envelope{}, &DecodeError{URL: url, Reason: fmt.Sprintf("item %d is not an object", i)}
		}
		env.Items = append(env.Items, m)
	}

	if root.IsArray() {
		env.Total, env.HasTotal = len(env.Items), true
		return env, nil
	}
	if t := root.Get(totalPath); t.Exists() && t.Type == gjson.Number {
		env.Total, env.HasTotal = int(t.Int()), true
	}

	return env, nil
}

// DecodeObject extracts a single object, unwrapping dataPath when present.
func DecodeObject(url string, body []byte, dataPath string) (map[string]any, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{URL: url, Reason: "invalid JSON"}
	}
	if dataPath == "" {
		dataPath = DefaultDataPath
	}

	root := gjson.ParseBytes(body)
	if d := root.Get(dataPath); d.IsObject() {
		root = d
	}
	m, ok := root.Value().(map[string]any)
	if !ok {
		return nil, &DecodeError{URL: url, Reason: "response is not an object"}
	}

	return m, nil
}

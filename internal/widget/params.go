package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Param is one query-string pair.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Params is an insertion-ordered string map. Setting an existing key replaces
// its value in place.
type Params []Param

func (p *Params) Set(key, value string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: value})
}

func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Merge sets every pair of other, last write winning.
func (p *Params) Merge(other Params) {
	for _, kv := range other {
		p.Set(kv.Key, kv.Value)
	}
}

// MergeMap sets every entry of m in key order.
func (p *Params) MergeMap(m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.Set(k, m[k])
	}
}

// ParseParamsJSON decodes a JSON object keeping its key order. Non-string
// values are kept as their JSON text.
func ParseParamsJSON(raw []byte) (Params, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("params: expected object")
	}
	var out Params
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		out.Set(key, rawString(value))
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	return out, nil
}

func rawString(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(value))
}

// queryBuilder appends pairs in order, allowing duplicate keys.
type queryBuilder struct {
	b strings.Builder
}

func (q *queryBuilder) add(key, value string) {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(url.QueryEscape(key))
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(value))
}

func (q *queryBuilder) String() string { return q.b.String() }

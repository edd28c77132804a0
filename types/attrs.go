package types

import (
	"encoding/json"
	"sort"
	"strings"
)

type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list with unique keys. Its JSON form is an object.
type Attrs []Attr

// FromMap converts m to Attrs, ordered by key.
func FromMap(m map[string]string) Attrs {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ret := make(Attrs, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, Attr{Key: k, Value: m[k]})
	}
	return ret
}

// ParseAttr parses a `key=value` line. Everything after the first `=` is the value; a line without `=` names an
// attribute with an empty value.
func ParseAttr(line string) Attr {
	kv := strings.SplitN(line, "=", 2)
	if len(kv) == 1 {
		return Attr{Key: kv[0]}
	}
	return Attr{Key: kv[0], Value: kv[1]}
}

// Set replaces the value of key if present, and appends it otherwise.
func (a *Attrs) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Key: key, Value: value})
}

func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (a Attrs) Map() map[string]string {
	ret := make(map[string]string, len(a))
	for _, attr := range a {
		ret[attr.Key] = attr.Value
	}
	return ret
}

func (a Attrs) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Map())
}

func (a *Attrs) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*a = FromMap(m)
	return nil
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Canonical ad content fields, in the order the edit form presents them.
const (
	FieldHeadline      = "headline"
	FieldPrimaryText   = "primaryText"
	FieldDescription   = "description"
	FieldCallToAction  = "callToAction"
	FieldImageURL      = "imageUrl"
	FieldClientName    = "clientName"
	FieldClientLogoURL = "clientLogoUrl"
	FieldURL           = "url"
)

var CanonicalFields = []string{
	FieldHeadline,
	FieldPrimaryText,
	FieldDescription,
	FieldCallToAction,
	FieldImageURL,
	FieldClientName,
	FieldClientLogoURL,
	FieldURL,
}

var canonicalSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CanonicalFields))
	for _, f := range CanonicalFields {
		m[f] = struct{}{}
	}
	return m
}()

// AdData is an open string-to-string field map with stable key order.
// Keys keep their encounter order from the payload they were decoded from;
// JSON round-trips reproduce that order byte for byte. The zero value is an
// empty, usable map.
type AdData struct {
	keys   []string
	values map[string]string
}

func (d *AdData) Set(key, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, seen := d.values[key]; !seen {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d AdData) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Value returns the field's value, or "" when absent.
func (d AdData) Value(key string) string {
	return d.values[key]
}

func (d AdData) Len() int {
	return len(d.keys)
}

// Keys returns the keys in encounter order.
func (d AdData) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// FieldOrder is the edit-form presentation order: the full canonical list
// first (whether or not the fields are present), then any extra keys in
// their encounter order.
func (d AdData) FieldOrder() []string {
	out := make([]string, 0, len(CanonicalFields)+len(d.keys))
	out = append(out, CanonicalFields...)
	for _, k := range d.keys {
		if _, ok := canonicalSet[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func (d AdData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the raw token stream so key order survives the
// decode; a plain map would shuffle it. Scalar values are coerced to
// strings, nested objects and arrays are rejected.
func (d *AdData) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ad data: expected JSON object")
	}

	d.keys = nil
	d.values = make(map[string]string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ad data: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		var val string
		switch v := valTok.(type) {
		case string:
			val = v
		case json.Number:
			val = v.String()
		case bool:
			val = strconv.FormatBool(v)
		case nil:
			val = ""
		default:
			return fmt.Errorf("ad data: field %q is not a scalar", key)
		}
		d.Set(key, val)
	}

	_, err = dec.Token() // closing brace
	return err
}

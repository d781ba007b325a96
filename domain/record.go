package domain

import (
	"encoding/xml"
	"sort"
)

// Record is a single generated mock record: a flat set of named string
// attributes. Values are always strings; ordering over them is always
// lexicographic, even for numeric-looking fields.
type Record map[string]string

// Field returns the value of the named attribute, or "" when absent.
// Missing fields compare as the empty string during ordering.
func (r Record) Field(name string) string {
	return r[name]
}

// MarshalXML emits one element per attribute, in sorted attribute order so
// output is deterministic.
func (r Record) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "Record" {
		start.Name.Local = "record"
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el := xml.StartElement{Name: xml.Name{Local: name}}
		if err := e.EncodeElement(r[name], el); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

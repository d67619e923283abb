package santa

import (
	"fmt"
	"strings"
)

// ResponseKind tags the shape of a profile store answer.
type ResponseKind int

const (
	KindEmpty ResponseKind = iota
	KindStrings
	KindRecords
	KindRecord
	KindText
	KindValues
	KindOther
)

func (k ResponseKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindStrings:
		return "strings"
	case KindRecords:
		return "records"
	case KindRecord:
		return "record"
	case KindText:
		return "text"
	case KindValues:
		return "values"
	default:
		return "other"
	}
}

// Field is one key/value entry of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of fields. Order is kept so that joining values is stable.
type Record []Field

// Lookup returns the first value stored under key.
func (r Record) Lookup(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", f.Key, f.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// Response is the answer returned by a profile store search. Exactly one payload
// field is meaningful, selected by Kind.
type Response struct {
	Kind    ResponseKind
	Strings []string
	Records []Record
	Record  Record
	Text    string
	Values  []any
	Other   any
}

func TextResponse(s string) Response          { return Response{Kind: KindText, Text: s} }
func StringsResponse(s ...string) Response    { return Response{Kind: KindStrings, Strings: s} }
func RecordsResponse(recs ...Record) Response { return Response{Kind: KindRecords, Records: recs} }
func RecordResponse(rec Record) Response      { return Response{Kind: KindRecord, Record: rec} }
func ValuesResponse(v ...any) Response        { return Response{Kind: KindValues, Values: v} }
func OtherResponse(v any) Response            { return Response{Kind: KindOther, Other: v} }

// answerKeys are tried in order when pulling the answer out of a record.
var answerKeys = []string{"answer", "text", "content", "result", "output"}

// Normalize flattens a Response into plain text. It never fails; an empty response
// yields "".
func Normalize(r Response) string {
	switch r.Kind {
	case KindEmpty:
		return ""
	case KindStrings:
		return strings.Join(r.Strings, " ")
	case KindRecords:
		if len(r.Records) == 0 {
			return ""
		}
		if s, ok := answerField(r.Records[0]); ok {
			return s
		}
		var vals []string
		for _, rec := range r.Records {
			vals = append(vals, stringValues(rec)...)
		}
		if len(vals) > 0 {
			return strings.Join(vals, " ")
		}
		return r.Records[0].String()
	case KindRecord:
		if len(r.Record) == 0 {
			return ""
		}
		if s, ok := answerField(r.Record); ok {
			return s
		}
		if vals := stringValues(r.Record); len(vals) > 0 {
			return strings.Join(vals, " ")
		}
		return r.Record.String()
	case KindText:
		return r.Text
	case KindValues:
		if len(r.Values) == 0 {
			return ""
		}
		return fmt.Sprint(r.Values[0])
	default:
		if r.Other == nil {
			return ""
		}
		return fmt.Sprint(r.Other)
	}
}

func answerField(rec Record) (string, bool) {
	for _, k := range answerKeys {
		v, ok := rec.Lookup(k)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func stringValues(rec Record) []string {
	var out []string
	for _, f := range rec {
		if s, ok := f.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

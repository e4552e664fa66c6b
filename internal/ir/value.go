package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// IRValue is a sealed interface representing values that can be compared
// against a field or stored in a record attribute.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRNull represents a JSON null value.
// Using an explicit type ensures all IRValues satisfy the sealed interface.
type IRNull struct{}

func (IRNull) irValue() {}

// MarshalJSON implements json.Marshaler for IRNull.
func (IRNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value.
type IRInt int64

func (IRInt) irValue() {}

// IRFloat represents a Parse Number that is not integral.
type IRFloat float64

func (IRFloat) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an array of IRValue elements.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to IRValue elements.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// IRDate is a Parse Date value.
//
// Wire form:
//
//	{"__type": "Date", "iso": "2011-08-21T18:02:52.249Z"}
type IRDate struct {
	Time time.Time
}

func (IRDate) irValue() {}

// IRPointer references another Parse object by class and identity.
//
// Wire form:
//
//	{"__type": "Pointer", "className": "GameScore", "objectId": "Ed1nuqPvc"}
type IRPointer struct {
	ClassName string
	ObjectID  string
}

func (IRPointer) irValue() {}

// IRFile is a file previously uploaded to Parse and attached to a record.
//
// Wire form:
//
//	{"__type": "File", "name": "...profile.png", "url": "http://files.parse.com/..."}
type IRFile struct {
	Name string
	URL  string
}

func (IRFile) irValue() {}

// Parse "__type" markers.
const (
	TypeDate    = "Date"
	TypePointer = "Pointer"
	TypeFile    = "File"
)

// isoLayout is the millisecond-precision UTC layout Parse uses for dates.
const isoLayout = "2006-01-02T15:04:05.000Z"

// NewIRString creates an IRString value.
func NewIRString(s string) IRString {
	return IRString(s)
}

// NewIRInt creates an IRInt value.
func NewIRInt(n int64) IRInt {
	return IRInt(n)
}

// NewIRBool creates an IRBool value.
func NewIRBool(b bool) IRBool {
	return IRBool(b)
}

// NewIRArray creates an IRArray from values.
func NewIRArray(vals ...IRValue) IRArray {
	return IRArray(vals)
}

// NewIRDate creates an IRDate value.
func NewIRDate(t time.Time) IRDate {
	return IRDate{Time: t}
}

// NewIRPointer creates an IRPointer to the given class and object id.
func NewIRPointer(className, objectID string) IRPointer {
	return IRPointer{ClassName: NormalizeName(className), ObjectID: objectID}
}

// SortedKeys returns the object's keys in lexicographic order.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON implements json.Marshaler for IRString.
func (s IRString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// MarshalJSON implements json.Marshaler for IRInt.
func (n IRInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(n))
}

// MarshalJSON implements json.Marshaler for IRFloat.
func (f IRFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// MarshalJSON implements json.Marshaler for IRBool.
func (b IRBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// MarshalJSON implements json.Marshaler for IRArray.
func (arr IRArray) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalIRValue(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for IRObject with sorted keys.
func (obj IRObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalIRValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for IRDate.
func (d IRDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"__type"`
		ISO  string `json:"iso"`
	}{TypeDate, d.Time.UTC().Format(isoLayout)})
}

// MarshalJSON implements json.Marshaler for IRPointer.
func (p IRPointer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"__type"`
		ClassName string `json:"className"`
		ObjectID  string `json:"objectId"`
	}{TypePointer, p.ClassName, p.ObjectID})
}

// MarshalJSON implements json.Marshaler for IRFile.
func (f IRFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"__type"`
		Name string `json:"name"`
		URL  string `json:"url"`
	}{TypeFile, f.Name, f.URL})
}

// MarshalIRValue marshals an IRValue to JSON bytes.
// A nil IRValue marshals as null.
func MarshalIRValue(v IRValue) ([]byte, error) {
	switch val := v.(type) {
	case nil, IRNull:
		return []byte("null"), nil
	case IRString:
		return val.MarshalJSON()
	case IRInt:
		return val.MarshalJSON()
	case IRFloat:
		return val.MarshalJSON()
	case IRBool:
		return val.MarshalJSON()
	case IRArray:
		return val.MarshalJSON()
	case IRObject:
		return val.MarshalJSON()
	case IRDate:
		return val.MarshalJSON()
	case IRPointer:
		return val.MarshalJSON()
	case IRFile:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown IRValue type: %T", v)
	}
}

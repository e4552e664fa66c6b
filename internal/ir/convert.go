package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ToIRValue converts a decoded Go value (from JSON, YAML or CUE) to an IRValue.
//
// Maps carrying a Parse "__type" marker of Date, Pointer or File become the
// matching typed value. Any other map becomes an IRObject.
func ToIRValue(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return IRNull{}, nil
	case IRValue:
		return val, nil
	case string:
		return IRString(val), nil
	case bool:
		return IRBool(val), nil
	case int:
		return IRInt(val), nil
	case int32:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case uint:
		return uintToIRInt(uint64(val))
	case uint64:
		return uintToIRInt(val)
	case float32:
		return IRFloat(val), nil
	case float64:
		return IRFloat(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return IRInt(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return IRFloat(f), nil
	case time.Time:
		return IRDate{Time: val}, nil
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := ToIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case []string:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			arr[i] = IRString(elem)
		}
		return arr, nil
	case map[string]any:
		return mapToIRValue(val)
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// uintToIRInt rejects unsigned values that do not fit in an IRInt.
func uintToIRInt(v uint64) (IRValue, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows int64", v)
	}
	return IRInt(v), nil
}

// UnmarshalIRValue decodes JSON into an IRValue.
// Integral numbers become IRInt, all other numbers IRFloat.
func UnmarshalIRValue(data []byte) (IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return ToIRValue(raw)
}

func mapToIRValue(m map[string]any) (IRValue, error) {
	if typ, ok := m["__type"].(string); ok {
		switch typ {
		case TypeDate:
			iso, _ := m["iso"].(string)
			t, err := time.Parse(time.RFC3339Nano, iso)
			if err != nil {
				return nil, fmt.Errorf("Date iso %q: %w", iso, err)
			}
			return IRDate{Time: t}, nil
		case TypePointer:
			className, _ := m["className"].(string)
			objectID, _ := m["objectId"].(string)
			if className == "" || objectID == "" {
				return nil, fmt.Errorf("Pointer requires className and objectId")
			}
			return NewIRPointer(className, objectID), nil
		case TypeFile:
			name, _ := m["name"].(string)
			url, _ := m["url"].(string)
			if name == "" || url == "" {
				return nil, fmt.Errorf("File requires name and url")
			}
			return IRFile{Name: name, URL: url}, nil
		}
	}

	obj := make(IRObject, len(m))
	for k, elem := range m {
		irElem, err := ToIRValue(elem)
		if err != nil {
			return nil, fmt.Errorf("[%q]: %w", k, err)
		}
		obj[k] = irElem
	}
	return obj, nil
}

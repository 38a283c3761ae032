package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/errs"
)

// From builds a List from any supported input:
//
//   - []byte: an entity stream at offset 0
//   - string: a hex-encoded entity stream
//   - Object, *Object: object form
//   - map[string]any: object form as produced by encoding/json
//   - encoding.Reader: an entity stream at the reader's cursor
//   - List: returned as-is
//
// Anything else is rejected with errs.ErrUnsupportedArgument.
func From(arg any) (List, error) {
	switch v := arg.(type) {
	case []byte:
		return Decode(v)
	case string:
		return DecodeHex(v)
	case Object:
		return FromObject(&v)
	case *Object:
		return FromObject(v)
	case map[string]any:
		return fromMap(v)
	case encoding.Reader:
		return DecodeFrom(v)
	case List:
		return v, nil
	default:
		return List{}, fmt.Errorf("%T: %w", arg, errs.ErrUnsupportedArgument)
	}
}

func fromMap(m map[string]any) (List, error) {
	raw, ok := m["entities"]
	if !ok || raw == nil {
		return List{}, errs.ErrMissingEntities
	}

	items, ok := raw.([]any)
	if !ok {
		return List{}, fmt.Errorf("entities is %T: %w", raw, errs.ErrMissingEntities)
	}

	obj := Object{Entities: make([]ObjectEntity, len(items))}
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return List{}, fmt.Errorf("entity %d is %T: %w", i, item, errs.ErrInvalidArgument)
		}

		typ, err := typeFromAny(fields["type"])
		if err != nil {
			return List{}, fmt.Errorf("entity %d: %w", i, err)
		}

		data, err := dataFromAny(fields["data"])
		if err != nil {
			return List{}, fmt.Errorf("entity %d: %w", i, err)
		}

		obj.Entities[i] = ObjectEntity{Type: typ, Data: data}
	}

	return FromObject(&obj)
}

func typeFromAny(v any) (uint64, error) {
	switch t := v.(type) {
	case uint64:
		return t, nil
	case uint:
		return uint64(t), nil
	case uint32:
		return uint64(t), nil
	case int:
		if t >= 0 {
			return uint64(t), nil
		}
	case int64:
		if t >= 0 {
			return uint64(t), nil
		}
	case float64:
		if t >= 0 && t == math.Trunc(t) && t < math.MaxUint64 {
			return uint64(t), nil
		}
	case json.Number:
		if n, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return n, nil
		}
	}

	return 0, fmt.Errorf("type %v (%T): %w", v, v, errs.ErrInvalidEntityType)
}

func dataFromAny(v any) (BytesOrHex, error) {
	switch d := v.(type) {
	case nil:
		return RawData(nil), nil
	case string:
		return HexData(d), nil
	case []byte:
		return RawData(d), nil
	case []any:
		out := make([]byte, len(d))
		for i, elem := range d {
			n, ok := elem.(float64)
			if !ok || n < 0 || n > math.MaxUint8 || n != math.Trunc(n) {
				return BytesOrHex{}, fmt.Errorf("data[%d] = %v: %w", i, elem, errs.ErrInvalidEntityData)
			}
			out[i] = byte(n)
		}

		return RawData(out), nil
	default:
		return BytesOrHex{}, fmt.Errorf("data is %T: %w", v, errs.ErrInvalidEntityData)
	}
}

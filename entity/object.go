package entity

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/pcproof/errs"
)

// BytesOrHex is an entity payload in object form: either raw bytes or a hex
// string. It is normalized to raw bytes exactly once, when FromObject builds
// the List; the ambiguity never reaches an Entity.
type BytesOrHex struct {
	raw   []byte
	hex   string
	isHex bool
}

// RawData wraps raw payload bytes.
func RawData(b []byte) BytesOrHex {
	return BytesOrHex{raw: b}
}

// HexData wraps a hex-encoded payload. The string is validated by FromObject.
func HexData(s string) BytesOrHex {
	return BytesOrHex{hex: s, isHex: true}
}

// IsHex reports whether the payload was given as a hex string.
func (v BytesOrHex) IsHex() bool {
	return v.isHex
}

// Normalize returns the payload as raw bytes.
//
// Returns errs.ErrInvalidHex if the hex form does not decode.
func (v BytesOrHex) Normalize() ([]byte, error) {
	if !v.isHex {
		return cloneBytes(v.raw), nil
	}

	b, err := hex.DecodeString(v.hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHex, err)
	}

	return b, nil
}

// String returns the payload as lowercase hex. A hex payload is returned
// lowercased but otherwise unvalidated.
func (v BytesOrHex) String() string {
	if v.isHex {
		return strings.ToLower(v.hex)
	}

	return hex.EncodeToString(v.raw)
}

// MarshalJSON writes the payload as a lowercase hex string.
func (v BytesOrHex) MarshalJSON() ([]byte, error) {
	b, err := v.Normalize()
	if err != nil {
		return nil, err
	}

	return json.Marshal(hex.EncodeToString(b))
}

// UnmarshalJSON accepts a hex string or an array of byte values.
func (v *BytesOrHex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = HexData(s)
		return nil
	}

	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidEntityData, string(data))
	}

	raw := make([]byte, len(values))
	for i, b := range values {
		if b < 0 || b > 0xff {
			return fmt.Errorf("data[%d] = %d: %w", i, b, errs.ErrInvalidEntityData)
		}
		raw[i] = byte(b)
	}
	*v = RawData(raw)

	return nil
}

// ObjectEntity is the object form of one entity.
type ObjectEntity struct {
	Type uint64     `json:"type"`
	Data BytesOrHex `json:"data"`
}

// Object is the structural interchange form of a List:
//
//	{"entities": [{"type": 1, "data": "aabb"}, {"type": 0, "data": ""}]}
type Object struct {
	Entities []ObjectEntity `json:"entities"`
}

// ToObject converts l into object form with hex-encoded payloads.
func (l List) ToObject() Object {
	out := Object{Entities: make([]ObjectEntity, len(l.entities))}
	for i, e := range l.entities {
		out.Entities[i] = ObjectEntity{Type: e.typ, Data: HexData(e.Hex())}
	}

	return out
}

// FromObject builds a List from object form. No byte stream is parsed.
//
// Returns:
//   - errs.ErrMissingEntities if obj is nil or has no entities field
//   - errs.ErrInvalidHex if a payload is not valid hex
//   - errs.ErrMissingSentinel / errs.ErrTrailingEntities if the entities do not
//     end with exactly one sentinel
func FromObject(obj *Object) (List, error) {
	if obj == nil || obj.Entities == nil {
		return List{}, errs.ErrMissingEntities
	}

	entities := make([]Entity, len(obj.Entities))
	for i, oe := range obj.Entities {
		data, err := oe.Data.Normalize()
		if err != nil {
			return List{}, fmt.Errorf("entity %d: %w", i, err)
		}
		entities[i] = Entity{typ: oe.Type, data: data}
	}

	if err := validateEntities(entities); err != nil {
		return List{}, err
	}

	return List{entities: entities}, nil
}

// MarshalJSON writes l in object form.
func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToObject())
}

// UnmarshalJSON reads l from object form.
func (l *List) UnmarshalJSON(data []byte) error {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}

	decoded, err := FromObject(&obj)
	if err != nil {
		return err
	}
	*l = decoded

	return nil
}

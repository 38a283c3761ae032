package entity

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"

	"github.com/arloliu/pcproof/errs"
)

// binaryObject is the cramberry schema of the object form.
type binaryObject struct {
	Entities []binaryEntity `cramberry:"1"`
}

type binaryEntity struct {
	Type uint64 `cramberry:"1"`
	Data []byte `cramberry:"2"`
}

// MarshalBinaryObject serializes the object form of l with cramberry. It is a
// compact alternative to JSON for non-text transports; it is not the proof
// wire format.
func (l List) MarshalBinaryObject() ([]byte, error) {
	obj := binaryObject{Entities: make([]binaryEntity, len(l.entities))}
	for i, e := range l.entities {
		obj.Entities[i] = binaryEntity{Type: e.typ, Data: e.data}
	}

	return cramberry.Marshal(obj)
}

// UnmarshalBinaryObject builds a List from MarshalBinaryObject output,
// applying the same structural checks as FromObject.
func UnmarshalBinaryObject(data []byte) (List, error) {
	var obj binaryObject
	if err := cramberry.Unmarshal(data, &obj); err != nil {
		return List{}, fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}
	if obj.Entities == nil {
		return List{}, errs.ErrMissingEntities
	}

	entities := make([]Entity, len(obj.Entities))
	for i, be := range obj.Entities {
		entities[i] = Entity{typ: be.Type, data: cloneBytes(be.Data)}
	}

	if err := validateEntities(entities); err != nil {
		return List{}, err
	}

	return List{entities: entities}, nil
}

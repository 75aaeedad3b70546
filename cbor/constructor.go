// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"fmt"
)

// alternativeToTag converts a constructor/alternative number to its CBOR tag number.
// Returns the tag number and whether the fields must be wrapped as [alt_number, fields]
// (true for alternatives 128+).
func alternativeToTag(alt uint) (uint64, bool) {
	switch {
	case alt <= 6:
		return uint64(alt) + CborTagAlternative1Min, false
	case alt <= 127:
		return uint64(alt) - 7 + CborTagAlternative2Min, false
	default:
		return CborTagAlternative3, true
	}
}

// IsAlternativeTag returns true if the given CBOR tag number represents
// a constructor/alternative (tags 121-127, 1280-1400, or 101).
func IsAlternativeTag(tagNum uint64) bool {
	return (tagNum >= CborTagAlternative1Min && tagNum <= CborTagAlternative1Max) ||
		(tagNum >= CborTagAlternative2Min && tagNum <= CborTagAlternative2Max) ||
		tagNum == CborTagAlternative3
}

// Constructor represents the tagged-alternative variant of the primitive tree:
// a constructor number plus an ordered list of field values
type Constructor struct {
	DecodeStoreCbor
	constructor uint
	fields      []any
}

func NewConstructor(constructor uint, fields []any) Constructor {
	return Constructor{
		constructor: constructor,
		fields:      fields,
	}
}

// Constructor returns the alternative/constructor number
func (c Constructor) Constructor() uint {
	return c.constructor
}

// Fields returns the decoded constructor field values
func (c Constructor) Fields() []any {
	return c.fields
}

func (c *Constructor) UnmarshalCBOR(data []byte) error {
	c.SetCbor(data)
	tmpTag := RawTag{}
	if _, err := Decode(data, &tmpTag); err != nil {
		return err
	}
	var fieldData RawMessage
	switch {
	case tmpTag.Number >= CborTagAlternative1Min && tmpTag.Number <= CborTagAlternative1Max:
		// Alternatives 0-6 (tags 121-127)
		c.constructor = uint(tmpTag.Number - CborTagAlternative1Min)
		fieldData = RawMessage(tmpTag.Content)
	case tmpTag.Number >= CborTagAlternative2Min && tmpTag.Number <= CborTagAlternative2Max:
		// Alternatives 7-127 (tags 1280-1400)
		c.constructor = uint(tmpTag.Number - CborTagAlternative2Min + 7)
		fieldData = RawMessage(tmpTag.Content)
	case tmpTag.Number == CborTagAlternative3:
		// Alternatives 128+ (tag 101): content is [constructor_number, fields]
		var outerArray []RawMessage
		if _, err := Decode(tmpTag.Content, &outerArray); err != nil {
			return fmt.Errorf("decode alternative 128+ content: %w", err)
		}
		if len(outerArray) != 2 {
			return fmt.Errorf(
				"expected 2 elements for alternative 128+, got %d",
				len(outerArray),
			)
		}
		var altNum uint64
		if _, err := Decode(outerArray[0], &altNum); err != nil {
			return fmt.Errorf("decode alternative number: %w", err)
		}
		c.constructor = uint(altNum)
		fieldData = outerArray[1]
	default:
		return fmt.Errorf("unsupported constructor tag: %d", tmpTag.Number)
	}
	// Parse the fields through Value for proper handling of CBOR types that need
	// special Go representation (bytestrings, nested constructors, etc)
	var tmpValue Value
	if _, err := Decode(fieldData, &tmpValue); err != nil {
		return err
	}
	fields, ok := tmpValue.Value().([]any)
	if !ok {
		return fmt.Errorf(
			"constructor fields are not an array, got %T",
			tmpValue.Value(),
		)
	}
	c.fields = fields
	return nil
}

// MarshalCBOR encodes the constructor as a CBOR tagged value. If original bytes are
// available from a previous UnmarshalCBOR, they are returned as-is for round-trip
// fidelity.
func (c Constructor) MarshalCBOR() ([]byte, error) {
	if stored := c.Cbor(); len(stored) > 0 {
		return stored, nil
	}
	tagNum, wrap := alternativeToTag(c.constructor)
	var content any
	if wrap {
		content = []any{uint64(c.constructor), c.fields}
	} else {
		content = c.fields
	}
	tmpTag := Tag{Number: tagNum, Content: content}
	return Encode(&tmpTag)
}

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

package cbor_test

import (
	"encoding/hex"
	"errors"
	"reflect"
	"testing"

	"github.com/blinklabs-io/cardano-tx/cbor"
)

type decodeTestDefinition struct {
	CborHex   string
	Object    interface{}
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []interface{}{uint64(1), uint64(2), uint64(3)},
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []interface{}{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest interface{}
		bytesRead, err := cbor.Decode(cborData, &dest)
		if err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if test.BytesRead > 0 {
			if bytesRead != test.BytesRead {
				t.Fatalf(
					"expected to read %d bytes, read %d instead",
					test.BytesRead,
					bytesRead,
				)
			}
		}
		if !reflect.DeepEqual(dest, test.Object) {
			t.Fatalf(
				"CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v",
				dest,
				test.Object,
			)
		}
	}
}

func TestDecodeUnknownField(t *testing.T) {
	// Map key 99 doesn't correspond to any struct field
	cborData, err := hex.DecodeString("a11863182a")
	if err != nil {
		t.Fatalf("failed to decode CBOR hex: %s", err)
	}
	var dest testMapStruct
	if _, err := cbor.Decode(cborData, &dest); err == nil {
		t.Fatalf("did not get expected error")
	}
}

type testStoreStruct struct {
	cbor.DecodeStoreCbor
	A uint64 `cbor:"0,keyasint"`
}

func (s *testStoreStruct) UnmarshalCBOR(cborData []byte) error {
	return s.UnmarshalCbor(cborData, s)
}

func TestDecodeStoreCbor(t *testing.T) {
	cborData, err := hex.DecodeString("a100182a")
	if err != nil {
		t.Fatalf("failed to decode CBOR hex: %s", err)
	}
	var dest testStoreStruct
	if _, err := cbor.Decode(cborData, &dest); err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	if dest.A != 42 {
		t.Fatalf("did not get expected field value: %d", dest.A)
	}
	// The original bytes are retained
	if !reflect.DeepEqual(dest.Cbor(), cborData) {
		t.Fatalf(
			"stored CBOR does not match original\n  got: %x\n  wanted: %x",
			dest.Cbor(),
			cborData,
		)
	}
}

func TestDeserializeError(t *testing.T) {
	innerErr := errors.New("unexpected shape")
	err := cbor.NewDeserializeError("transaction body", innerErr)
	if !errors.Is(err, cbor.ErrDeserialize) {
		t.Fatalf("did not get expected error identity")
	}
	var deserializeErr cbor.DeserializeError
	if !errors.As(err, &deserializeErr) {
		t.Fatalf("did not get expected error type")
	}
	if deserializeErr.Item != "transaction body" {
		t.Fatalf("did not get expected item: %s", deserializeErr.Item)
	}
	if !errors.Is(err, innerErr) {
		t.Fatalf("wrapped error identity was lost")
	}
}

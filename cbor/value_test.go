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
	"math/big"
	"reflect"
	"testing"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/cardano-tx/internal/test"
)

var valueTestDefs = []struct {
	cborHex        string
	expectedObject interface{}
}{
	// []
	{
		cborHex:        "80",
		expectedObject: []any{},
	},
	// [1, 2, 3]
	{
		cborHex:        "83010203",
		expectedObject: []any{uint64(1), uint64(2), uint64(3)},
	},
	// {1: 2, 3: 4}
	{
		cborHex: "a201020304",
		expectedObject: map[any]any{
			uint64(1): uint64(2),
			uint64(3): uint64(4),
		},
	},
	// 'abcdef'
	{
		cborHex:        "43abcdef",
		expectedObject: cbor.NewByteString([]byte{0xab, 0xcd, 0xef}),
	},
	// "hello"
	{
		cborHex:        "6568656c6c6f",
		expectedObject: "hello",
	},
	// 24('abcdef')
	{
		cborHex:        "d81843abcdef",
		expectedObject: cbor.WrappedCbor([]byte{0xab, 0xcd, 0xef}),
	},
	// 30([3, 1000])
	{
		cborHex: "d81e82031903e8",
		expectedObject: cbor.Rat{
			Rat: big.NewRat(3, 1000),
		},
	},
	// 258([1, 2, 3])
	{
		cborHex:        "d9010283010203",
		expectedObject: cbor.Set([]any{uint64(1), uint64(2), uint64(3)}),
	},
	// 259({1: 2, 3: 4})
	{
		cborHex: "d90103a201020304",
		expectedObject: cbor.Map(map[any]any{
			uint64(1): uint64(2),
			uint64(3): uint64(4),
		}),
	},
}

func TestValueDecode(t *testing.T) {
	for _, testDef := range valueTestDefs {
		cborData := test.DecodeHexString(testDef.cborHex)
		var tmpValue cbor.Value
		if _, err := cbor.Decode(cborData, &tmpValue); err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		newObj := tmpValue.Value()
		if !reflect.DeepEqual(newObj, testDef.expectedObject) {
			t.Fatalf(
				"CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v",
				newObj,
				testDef.expectedObject,
			)
		}
		if !reflect.DeepEqual(tmpValue.Cbor(), cborData) {
			t.Fatalf("original CBOR was not retained")
		}
	}
}

func TestConstructorRoundTrip(t *testing.T) {
	testDefs := []struct {
		cborHex             string
		expectedConstructor uint
		expectedFields      []any
	}{
		// 121([1])
		{
			cborHex:             "d8798101",
			expectedConstructor: 0,
			expectedFields:      []any{uint64(1)},
		},
		// 123([2, 3])
		{
			cborHex:             "d87b820203",
			expectedConstructor: 2,
			expectedFields:      []any{uint64(2), uint64(3)},
		},
		// 1280([])
		{
			cborHex:             "d9050080",
			expectedConstructor: 7,
			expectedFields:      []any{},
		},
	}
	for _, testDef := range testDefs {
		cborData := test.DecodeHexString(testDef.cborHex)
		var tmpConstr cbor.Constructor
		if _, err := cbor.Decode(cborData, &tmpConstr); err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if tmpConstr.Constructor() != testDef.expectedConstructor {
			t.Fatalf(
				"did not get expected constructor: got %d, wanted %d",
				tmpConstr.Constructor(),
				testDef.expectedConstructor,
			)
		}
		if !reflect.DeepEqual(tmpConstr.Fields(), testDef.expectedFields) {
			t.Fatalf(
				"did not get expected fields\n  got: %#v\n  wanted: %#v",
				tmpConstr.Fields(),
				testDef.expectedFields,
			)
		}
		// Re-encoding produces the original bytes
		newCbor, err := cbor.Encode(&tmpConstr)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		if hex.EncodeToString(newCbor) != testDef.cborHex {
			t.Fatalf(
				"did not get expected CBOR\n  got: %x\n  wanted: %s",
				newCbor,
				testDef.cborHex,
			)
		}
	}
}

func TestValueDecodeConstructor(t *testing.T) {
	// 122([])
	cborData := test.DecodeHexString("d87a80")
	var tmpValue cbor.Value
	if _, err := cbor.Decode(cborData, &tmpValue); err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	tmpConstr, ok := tmpValue.Value().(cbor.Constructor)
	if !ok {
		t.Fatalf("did not get expected Constructor: %#v", tmpValue.Value())
	}
	if tmpConstr.Constructor() != 1 {
		t.Fatalf(
			"did not get expected constructor: %d",
			tmpConstr.Constructor(),
		)
	}
	if len(tmpConstr.Fields()) != 0 {
		t.Fatalf("did not get expected fields: %#v", tmpConstr.Fields())
	}
}

func TestLazyValue(t *testing.T) {
	cborData := test.DecodeHexString("83010203")
	lazy := cbor.NewLazyValue(cborData)
	decoded, err := lazy.Decode()
	if err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	if !reflect.DeepEqual(
		decoded.Value(),
		[]any{uint64(1), uint64(2), uint64(3)},
	) {
		t.Fatalf("did not get expected object: %#v", decoded.Value())
	}
	// Encoding returns the stored bytes untouched
	newCbor, err := cbor.Encode(lazy)
	if err != nil {
		t.Fatalf("failed to encode object to CBOR: %s", err)
	}
	if !reflect.DeepEqual(newCbor, cborData) {
		t.Fatalf(
			"did not get expected CBOR\n  got: %x\n  wanted: %x",
			newCbor,
			cborData,
		)
	}
}

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

package common

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/cardano-tx/internal/test"
)

func testPolicyId(b byte) Blake2b224 {
	return NewBlake2b224(bytes.Repeat([]byte{b}, Blake2b224Size))
}

func TestAssetAddition(t *testing.T) {
	a := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 1,
		"Token2": 2,
	})
	b := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 10,
		"Token3": 30,
	})
	expected := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 11,
		"Token2": 2,
		"Token3": 30,
	})
	result := a.Add(b)
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %#v, wanted %#v",
			result,
			expected,
		)
	}
	// Operands are untouched
	if !a.Compare(NewAssetFromNames(map[string]MultiAssetTypeOutput{"Token1": 1, "Token2": 2})) {
		t.Fatalf("operand was modified: %#v", a)
	}
}

func TestAssetSubtraction(t *testing.T) {
	a := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 10,
		"Token2": 20,
	})
	b := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 1,
		"Token2": 20,
	})
	result, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// Token2 cancelled to zero and was dropped
	expected := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 9,
	})
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %#v, wanted %#v",
			result,
			expected,
		)
	}
	if _, ok := result[cbor.NewByteString([]byte("Token2"))]; ok {
		t.Fatalf("zero-quantity entry was not dropped")
	}
	// The failing direction
	_, err = b.Subtract(a)
	if err == nil {
		t.Fatalf("did not get expected error")
	}
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("did not get expected error type: %s", err)
	}
}

func TestAssetComparison(t *testing.T) {
	a := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 1,
		"Token2": 2,
	})
	b := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 1,
		"Token2": 3,
	})
	c := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token1": 1,
		"Token2": 2,
		"Token3": 3,
	})
	d := NewAssetFromNames(map[string]MultiAssetTypeOutput{
		"Token3": 1,
		"Token4": 2,
	})
	if !a.Compare(a) {
		t.Fatalf("asset does not equal itself")
	}
	if !a.LessThanOrEqual(b) || b.LessThanOrEqual(a) || a.Compare(b) {
		t.Fatalf("did not get expected ordering for a/b")
	}
	if !a.LessThanOrEqual(c) || c.LessThanOrEqual(a) || a.Compare(c) {
		t.Fatalf("did not get expected ordering for a/c")
	}
	if a.Compare(d) || a.LessThanOrEqual(d) || d.LessThanOrEqual(a) {
		t.Fatalf("did not get expected ordering for a/d")
	}
}

func TestMultiAssetAddition(t *testing.T) {
	a := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	b := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 10,
			"Token2": 20,
		}),
		testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	expected := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 11,
			"Token2": 22,
		}),
		testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	result := a.Add(b)
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %s, wanted %s",
			result.String(),
			expected.String(),
		)
	}
}

func TestMultiAssetSubtraction(t *testing.T) {
	a := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	b := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 10,
			"Token2": 20,
		}),
		testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	result, err := b.Subtract(a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 9,
			"Token2": 18,
		}),
		testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %s, wanted %s",
			result.String(),
			expected.String(),
		)
	}
	// Round trip property
	if !result.Add(a).Compare(b) {
		t.Fatalf("subtract-then-add did not round trip")
	}
	// The failing direction: policy '2' is absent from the minuend
	_, err = a.Subtract(b)
	if err == nil {
		t.Fatalf("did not get expected error")
	}
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("did not get expected error type: %s", err)
	}
}

func TestMultiAssetComparison(t *testing.T) {
	a := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	b := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
			"Token3": 3,
		}),
	})
	c := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 3,
		}),
		testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	d := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 1,
			"Token2": 2,
		}),
	})
	if a.Compare(b) || !a.LessThanOrEqual(b) || b.LessThanOrEqual(a) {
		t.Fatalf("did not get expected ordering for a/b")
	}
	if a.Compare(c) || !a.LessThanOrEqual(c) || c.LessThanOrEqual(a) {
		t.Fatalf("did not get expected ordering for a/c")
	}
	if a.Compare(d) || a.LessThanOrEqual(d) || d.LessThanOrEqual(a) {
		t.Fatalf("did not get expected ordering for a/d")
	}
}

func TestMultiAssetCompareZeroEntries(t *testing.T) {
	// A bundle holding only zero quantities equals an empty bundle
	a := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
			"Token1": 0,
		}),
	})
	b := NewMultiAsset[MultiAssetTypeOutput](nil)
	if !a.Compare(b) || !b.Compare(a) {
		t.Fatalf("zero-quantity entries were not ignored in comparison")
	}
}

func TestMultiAssetMint(t *testing.T) {
	// Mint bundles allow negative quantities for burning
	a := NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeMint]{
		testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeMint{
			"Token1": -5,
		}),
	})
	if a.Asset(testPolicyId('1'), []byte("Token1")) != -5 {
		t.Fatalf("did not get expected quantity")
	}
}

func TestValueComparison(t *testing.T) {
	a := NewValueWithAssets(
		1,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 1,
				"Token2": 2,
			}),
		}),
	)
	b := NewValueWithAssets(
		11,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
		}),
	)
	c := NewValueWithAssets(
		11,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
			testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
		}),
	)
	if a.Compare(b) || !a.LessThanOrEqual(b) || b.LessThanOrEqual(a) {
		t.Fatalf("did not get expected ordering for a/b")
	}
	if !a.LessThanOrEqual(c) || c.LessThanOrEqual(a) {
		t.Fatalf("did not get expected ordering for a/c")
	}
	if !b.LessThanOrEqual(c) || c.LessThanOrEqual(b) {
		t.Fatalf("did not get expected ordering for b/c")
	}
}

func TestValueSubtraction(t *testing.T) {
	a := NewValueWithAssets(
		1,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 1,
				"Token2": 2,
			}),
		}),
	)
	b := NewValueWithAssets(
		11,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
		}),
	)
	c := NewValueWithAssets(
		11,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
			testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
		}),
	)
	result, err := b.Subtract(a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := NewValueWithAssets(
		10,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 10,
				"Token2": 20,
			}),
		}),
	)
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %s, wanted %s",
			result.String(),
			expected.String(),
		)
	}
	result, err = c.Subtract(a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected = NewValueWithAssets(
		10,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 10,
				"Token2": 20,
			}),
			testPolicyId('2'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 11,
				"Token2": 22,
			}),
		}),
	)
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %s, wanted %s",
			result.String(),
			expected.String(),
		)
	}
	// Both failing directions
	if _, err := a.Subtract(c); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("did not get expected error, got: %v", err)
	}
	if _, err := b.Subtract(c); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("did not get expected error, got: %v", err)
	}
}

func TestValueAddCoin(t *testing.T) {
	a := NewValueWithAssets(
		1,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 1,
				"Token2": 2,
			}),
		}),
	)
	result := a.AddCoin(100)
	expected := NewValueWithAssets(
		101,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"Token1": 1,
				"Token2": 2,
			}),
		}),
	)
	if !result.Compare(expected) {
		t.Fatalf(
			"did not get expected result: got %s, wanted %s",
			result.String(),
			expected.String(),
		)
	}
	// Operand is untouched
	if a.Coin != 1 {
		t.Fatalf("operand was modified: %s", a.String())
	}
}

func TestValueCbor(t *testing.T) {
	expectedCborHex := "821864a1581c31313131313131313131313131313131313131313131313131313131" +
		"a24a54657374546f6b656e311a009896804a54657374546f6b656e321a01312d00"
	value := NewValueWithAssets(
		100,
		NewMultiAsset(map[Blake2b224]Asset[MultiAssetTypeOutput]{
			testPolicyId('1'): NewAssetFromNames(map[string]MultiAssetTypeOutput{
				"TestToken1": 10000000,
				"TestToken2": 20000000,
			}),
		}),
	)
	cborData, err := cbor.Encode(&value)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if hex.EncodeToString(cborData) != expectedCborHex {
		t.Fatalf(
			"did not get expected CBOR\n     got: %x\n  wanted: %s",
			cborData,
			expectedCborHex,
		)
	}
	var decoded Value
	if _, err := cbor.Decode(test.DecodeHexString(expectedCborHex), &decoded); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !decoded.Compare(value) {
		t.Fatalf(
			"did not get expected value after round trip: got %s, wanted %s",
			decoded.String(),
			value.String(),
		)
	}
}

func TestValueCborBareCoin(t *testing.T) {
	value := NewValue(100000000000)
	cborData, err := cbor.Encode(&value)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if hex.EncodeToString(cborData) != "1b000000174876e800" {
		t.Fatalf("did not get expected CBOR: %x", cborData)
	}
	var decoded Value
	if _, err := cbor.Decode(cborData, &decoded); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if decoded.Assets != nil {
		t.Fatalf("did not get expected nil assets")
	}
	if decoded.Coin != 100000000000 {
		t.Fatalf("did not get expected coin quantity: %d", decoded.Coin)
	}
}

func TestMultiAssetJson(t *testing.T) {
	testDefs := []struct {
		multiAssetObj MultiAsset[MultiAssetTypeOutput]
		expectedJson  string
	}{
		{
			multiAssetObj: MultiAsset[MultiAssetTypeOutput]{
				data: map[Blake2b224]Asset[MultiAssetTypeOutput]{
					NewBlake2b224(test.DecodeHexString("29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61")): {
						cbor.NewByteString(test.DecodeHexString("6675726e697368613239686e")): 123456,
					},
				},
			},
			expectedJson: `[{"name":"furnisha29hn","nameHex":"6675726e697368613239686e","policyId":"29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61","fingerprint":"asset1jdu2xcrwlqsjqqjger6kj2szddz8dcpvcg4ksz","amount":123456}]`,
		},
		{
			multiAssetObj: MultiAsset[MultiAssetTypeOutput]{
				data: map[Blake2b224]Asset[MultiAssetTypeOutput]{
					NewBlake2b224(test.DecodeHexString("eaf8042c1d8203b1c585822f54ec32c4c1bb4d3914603e2cca20bbd5")): {
						cbor.NewByteString(test.DecodeHexString("426f7764757261436f6e63657074733638")): 234567,
					},
				},
			},
			expectedJson: `[{"name":"BowduraConcepts68","nameHex":"426f7764757261436f6e63657074733638","policyId":"eaf8042c1d8203b1c585822f54ec32c4c1bb4d3914603e2cca20bbd5","fingerprint":"asset1kp7hdhqc7chmyqvtqrsljfdrdt6jz8mg5culpe","amount":234567}]`,
		},
	}
	for _, testDef := range testDefs {
		jsonData, err := json.Marshal(&testDef.multiAssetObj)
		if err != nil {
			t.Fatalf("failed to marshal MultiAsset object into JSON: %s", err)
		}
		if string(jsonData) != testDef.expectedJson {
			t.Fatalf(
				"MultiAsset object did not marshal into expected JSON\n  got: %s\n  wanted: %s",
				jsonData,
				testDef.expectedJson,
			)
		}
		var decoded MultiAsset[MultiAssetTypeOutput]
		if err := json.Unmarshal([]byte(testDef.expectedJson), &decoded); err != nil {
			t.Fatalf("failed to unmarshal JSON into MultiAsset object: %s", err)
		}
		if !decoded.Compare(testDef.multiAssetObj) {
			t.Fatalf(
				"did not get expected MultiAsset after JSON round trip: got %s, wanted %s",
				decoded.String(),
				testDef.multiAssetObj.String(),
			)
		}
	}
}

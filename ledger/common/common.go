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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/plutigo/data"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
	Blake2b160Size = 20
)

type Blake2b256 [Blake2b256Size]byte

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromBytes creates a Blake2b256 from raw bytes, failing unless
// the input is exactly the declared size
func NewBlake2b256FromBytes(data []byte) (Blake2b256, error) {
	if len(data) != Blake2b256Size {
		return Blake2b256{}, SizeMismatchError{
			Item:     "Blake2b256",
			Expected: Blake2b256Size,
			Actual:   len(data),
		}
	}
	return Blake2b256(data), nil
}

// NewBlake2b256FromHex creates a Blake2b256 from a hex string
func NewBlake2b256FromHex(hexData string) (Blake2b256, error) {
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		return Blake2b256{}, InvalidHexError{Item: "Blake2b256", Err: err}
	}
	return NewBlake2b256FromBytes(decoded)
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) ToPlutusData() data.PlutusData {
	return data.NewByteString(b[:])
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b256) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Blake2b256Size)
	copy(hashBytes, b[:])
	return cbor.Encode(hashBytes)
}

func (b Blake2b256) Bech32(prefix string) string {
	return encodeBech32(prefix, b[:])
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b256(tmpHash.Sum(nil))
}

type Blake2b224 [Blake2b224Size]byte

func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

// NewBlake2b224FromBytes creates a Blake2b224 from raw bytes, failing unless
// the input is exactly the declared size
func NewBlake2b224FromBytes(data []byte) (Blake2b224, error) {
	if len(data) != Blake2b224Size {
		return Blake2b224{}, SizeMismatchError{
			Item:     "Blake2b224",
			Expected: Blake2b224Size,
			Actual:   len(data),
		}
	}
	return Blake2b224(data), nil
}

// NewBlake2b224FromHex creates a Blake2b224 from a hex string
func NewBlake2b224FromHex(hexData string) (Blake2b224, error) {
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		return Blake2b224{}, InvalidHexError{Item: "Blake2b224", Err: err}
	}
	return NewBlake2b224FromBytes(decoded)
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) ToPlutusData() data.PlutusData {
	return data.NewByteString(b[:])
}

func (b Blake2b224) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b224) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Blake2b224Size)
	copy(hashBytes, b[:])
	return cbor.Encode(hashBytes)
}

func (b Blake2b224) Bech32(prefix string) string {
	return encodeBech32(prefix, b[:])
}

// Blake2b224Hash generates a Blake2b-224 hash from the provided data
func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b224(tmpHash.Sum(nil))
}

type Blake2b160 [Blake2b160Size]byte

func NewBlake2b160(data []byte) Blake2b160 {
	b := Blake2b160{}
	copy(b[:], data)
	return b
}

// NewBlake2b160FromBytes creates a Blake2b160 from raw bytes, failing unless
// the input is exactly the declared size
func NewBlake2b160FromBytes(data []byte) (Blake2b160, error) {
	if len(data) != Blake2b160Size {
		return Blake2b160{}, SizeMismatchError{
			Item:     "Blake2b160",
			Expected: Blake2b160Size,
			Actual:   len(data),
		}
	}
	return Blake2b160(data), nil
}

// NewBlake2b160FromHex creates a Blake2b160 from a hex string
func NewBlake2b160FromHex(hexData string) (Blake2b160, error) {
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		return Blake2b160{}, InvalidHexError{Item: "Blake2b160", Err: err}
	}
	return NewBlake2b160FromBytes(decoded)
}

func (b Blake2b160) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b160) Bytes() []byte {
	return b[:]
}

func (b Blake2b160) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b160) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Blake2b160Size)
	copy(hashBytes, b[:])
	return cbor.Encode(hashBytes)
}

func (b Blake2b160) Bech32(prefix string) string {
	return encodeBech32(prefix, b[:])
}

// Blake2b160Hash generates a Blake2b-160 hash from the provided data
func Blake2b160Hash(data []byte) Blake2b160 {
	tmpHash, err := blake2b.New(Blake2b160Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b160(tmpHash.Sum(nil))
}

// TransactionId identifies a transaction by the hash of its body
type TransactionId = Blake2b256

// ScriptHash is the hash of a script
type ScriptHash = Blake2b224

// PolicyId names the minting policy of a token class. It is the hash of the
// policy script.
type PolicyId = Blake2b224

// AddrKeyHash is the hash of a payment verification key
type AddrKeyHash = Blake2b224

func encodeBech32(prefix string, data []byte) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

type AssetFingerprint struct {
	policyId  []byte
	assetName []byte
}

func NewAssetFingerprint(policyId []byte, assetName []byte) AssetFingerprint {
	return AssetFingerprint{
		policyId:  policyId,
		assetName: assetName,
	}
}

func (a AssetFingerprint) Hash() Blake2b160 {
	tmpHash, err := blake2b.New(Blake2b160Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error creating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(a.policyId)
	tmpHash.Write(a.assetName)
	return NewBlake2b160(tmpHash.Sum(nil))
}

func (a AssetFingerprint) String() string {
	return a.Hash().Bech32("asset")
}

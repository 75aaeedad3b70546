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

// Package keys implements ed25519 payment keys: signing keys derived from a
// 32-byte seed and verification keys with curve point validation. Signing is
// deterministic, so a given key and message always produce the same
// signature.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/cardano-tx/ledger/common"
)

const (
	SigningKeySize      = ed25519.SeedSize
	VerificationKeySize = ed25519.PublicKeySize
	SignatureSize       = ed25519.SignatureSize
)

// SigningKey is an ed25519 signing key held as its 32-byte seed
type SigningKey struct {
	seed [SigningKeySize]byte
}

// NewSigningKey creates a SigningKey from a 32-byte seed
func NewSigningKey(seed []byte) (SigningKey, error) {
	if len(seed) != SigningKeySize {
		return SigningKey{}, common.InvalidKeyMaterialError{
			Item: "signing key",
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				SigningKeySize,
				len(seed),
			),
		}
	}
	var sk SigningKey
	copy(sk.seed[:], seed)
	return sk, nil
}

// NewSigningKeyFromHex creates a SigningKey from a hex-encoded 32-byte seed
func NewSigningKeyFromHex(seedHex string) (SigningKey, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return SigningKey{}, common.InvalidHexError{
			Item: "signing key",
			Err:  err,
		}
	}
	return NewSigningKey(seed)
}

// GenerateSigningKey creates a SigningKey from a fresh random seed
func GenerateSigningKey() (SigningKey, error) {
	var sk SigningKey
	if _, err := rand.Read(sk.seed[:]); err != nil {
		return SigningKey{}, fmt.Errorf("generate signing key: %w", err)
	}
	return sk, nil
}

// Sign signs a message, producing a 64-byte signature. Signing is
// deterministic.
func (sk SigningKey) Sign(message []byte) []byte {
	priv := ed25519.NewKeyFromSeed(sk.seed[:])
	return ed25519.Sign(priv, message)
}

// VerificationKey returns the verification key for the signing key
func (sk SigningKey) VerificationKey() VerificationKey {
	priv := ed25519.NewKeyFromSeed(sk.seed[:])
	var vk VerificationKey
	copy(vk.data[:], priv.Public().(ed25519.PublicKey))
	return vk
}

func (sk SigningKey) Bytes() []byte {
	ret := make([]byte, SigningKeySize)
	copy(ret, sk.seed[:])
	return ret
}

func (sk SigningKey) String() string {
	return hex.EncodeToString(sk.seed[:])
}

func (sk *SigningKey) UnmarshalCBOR(cborData []byte) error {
	tmpData := []byte{}
	if _, err := cbor.Decode(cborData, &tmpData); err != nil {
		return err
	}
	tmpKey, err := NewSigningKey(tmpData)
	if err != nil {
		return err
	}
	*sk = tmpKey
	return nil
}

func (sk SigningKey) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(sk.seed[:])
}

// VerificationKey is an ed25519 public key. Constructors reject byte strings
// that don't decode to a valid curve point.
type VerificationKey struct {
	data [VerificationKeySize]byte
}

// NewVerificationKey creates a VerificationKey from its 32-byte encoding
func NewVerificationKey(keyBytes []byte) (VerificationKey, error) {
	if len(keyBytes) != VerificationKeySize {
		return VerificationKey{}, common.InvalidKeyMaterialError{
			Item: "verification key",
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				VerificationKeySize,
				len(keyBytes),
			),
		}
	}
	if _, err := new(edwards25519.Point).SetBytes(keyBytes); err != nil {
		return VerificationKey{}, common.InvalidKeyMaterialError{
			Item:   "verification key",
			Reason: "bytes do not encode a curve point",
		}
	}
	var vk VerificationKey
	copy(vk.data[:], keyBytes)
	return vk, nil
}

// NewVerificationKeyFromHex creates a VerificationKey from its hex-encoded
// 32-byte encoding
func NewVerificationKeyFromHex(keyHex string) (VerificationKey, error) {
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return VerificationKey{}, common.InvalidHexError{
			Item: "verification key",
			Err:  err,
		}
	}
	return NewVerificationKey(keyBytes)
}

// Verify checks a signature over a message. A malformed signature is an
// error; a well-formed signature that doesn't match returns (false, nil).
func (vk VerificationKey) Verify(message []byte, signature []byte) (bool, error) {
	return common.VerifyVKeySignature(vk.data[:], signature, message)
}

// Hash returns the Blake2b224 hash of the verification key. This is the key
// hash used in addresses and required signer lists.
func (vk VerificationKey) Hash() common.Blake2b224 {
	return common.Blake2b224Hash(vk.data[:])
}

func (vk VerificationKey) Bytes() []byte {
	ret := make([]byte, VerificationKeySize)
	copy(ret, vk.data[:])
	return ret
}

func (vk VerificationKey) String() string {
	return hex.EncodeToString(vk.data[:])
}

func (vk *VerificationKey) UnmarshalCBOR(cborData []byte) error {
	tmpData := []byte{}
	if _, err := cbor.Decode(cborData, &tmpData); err != nil {
		return err
	}
	tmpKey, err := NewVerificationKey(tmpData)
	if err != nil {
		return err
	}
	*vk = tmpKey
	return nil
}

func (vk VerificationKey) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(vk.data[:])
}

func (vk VerificationKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(vk.String())
}

// KeyPair bundles a signing key with its verification key
type KeyPair struct {
	SigningKey      SigningKey
	VerificationKey VerificationKey
}

// NewKeyPair creates a KeyPair from a signing key
func NewKeyPair(sk SigningKey) KeyPair {
	return KeyPair{
		SigningKey:      sk,
		VerificationKey: sk.VerificationKey(),
	}
}

// GenerateKeyPair creates a KeyPair from a fresh random seed
func GenerateKeyPair() (KeyPair, error) {
	sk, err := GenerateSigningKey()
	if err != nil {
		return KeyPair{}, err
	}
	return NewKeyPair(sk), nil
}

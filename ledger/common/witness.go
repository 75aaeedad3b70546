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
	"crypto/ed25519"
	"fmt"

	"github.com/blinklabs-io/cardano-tx/cbor"
)

// VkeyWitness attests a transaction with a verification key and a signature
// over the transaction body hash
type VkeyWitness struct {
	cbor.StructAsArray
	Vkey      []byte
	Signature []byte
}

// NewVkeyWitness creates a VkeyWitness from a verification key and signature
func NewVkeyWitness(vkey []byte, signature []byte) VkeyWitness {
	return VkeyWitness{
		Vkey:      vkey,
		Signature: signature,
	}
}

// VkeyHash returns the Blake2b224 hash of the witness verification key
func (w VkeyWitness) VkeyHash() Blake2b224 {
	return Blake2b224Hash(w.Vkey)
}

// BootstrapWitness attests a transaction for a Byron-era address
type BootstrapWitness struct {
	cbor.StructAsArray
	PublicKey  []byte
	Signature  []byte
	ChainCode  []byte
	Attributes []byte
}

// VerifyVKeySignature verifies an ed25519 signature over a message. Malformed
// key or signature material is an error; a well-formed signature that doesn't
// match returns (false, nil).
func VerifyVKeySignature(
	publicKey []byte,
	signature []byte,
	message []byte,
) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, InvalidKeyMaterialError{
			Item: "verification key",
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				ed25519.PublicKeySize,
				len(publicKey),
			),
		}
	}
	if len(signature) != ed25519.SignatureSize {
		return false, InvalidSignatureError{
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				ed25519.SignatureSize,
				len(signature),
			),
		}
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}

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

// Package cose implements detached message signing using COSE_Sign1
// envelopes with ed25519 (EdDSA) signatures. An envelope binds a payload, a
// public key, and a signature into a bundle that can be verified without any
// surrounding transaction.
package cose

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/cardano-tx/keys"
	"github.com/blinklabs-io/cardano-tx/ledger/common"
)

const (
	// COSE key parameter labels
	keyLabelKty = 1
	keyLabelAlg = 3
	keyLabelCrv = -1
	keyLabelX   = -2

	// COSE key parameter values for OKP/Ed25519
	keyTypeOkp   = 1
	algEdDSA     = -8
	curveEd25519 = 6

	// COSE header parameter labels
	headerLabelAlg = 1

	sigContextSignature1 = "Signature1"
)

// CoseKey is a COSE key structure carrying an Ed25519 public key (OKP key
// type, Ed25519 curve, EdDSA algorithm)
type CoseKey struct {
	publicKey []byte
}

// NewCoseKey creates a CoseKey from a verification key
func NewCoseKey(vk keys.VerificationKey) CoseKey {
	return CoseKey{publicKey: vk.Bytes()}
}

// PublicKey returns the wrapped public key as a VerificationKey
func (k CoseKey) PublicKey() (keys.VerificationKey, error) {
	return keys.NewVerificationKey(k.publicKey)
}

func (k CoseKey) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(map[int64]any{
		keyLabelKty: keyTypeOkp,
		keyLabelAlg: algEdDSA,
		keyLabelCrv: curveEd25519,
		keyLabelX:   k.publicKey,
	})
}

func (k *CoseKey) UnmarshalCBOR(cborData []byte) error {
	tmpMap := map[int64]cbor.RawMessage{}
	if _, err := cbor.Decode(cborData, &tmpMap); err != nil {
		return cbor.NewDeserializeError("COSE key", err)
	}
	var kty int64
	if raw, ok := tmpMap[keyLabelKty]; ok {
		if _, err := cbor.Decode(raw, &kty); err != nil {
			return cbor.NewDeserializeError("COSE key type", err)
		}
	}
	if kty != keyTypeOkp {
		return common.InvalidKeyMaterialError{
			Item:   "COSE key",
			Reason: fmt.Sprintf("unsupported key type %d", kty),
		}
	}
	var crv int64
	if raw, ok := tmpMap[keyLabelCrv]; ok {
		if _, err := cbor.Decode(raw, &crv); err != nil {
			return cbor.NewDeserializeError("COSE key curve", err)
		}
	}
	if crv != curveEd25519 {
		return common.InvalidKeyMaterialError{
			Item:   "COSE key",
			Reason: fmt.Sprintf("unsupported curve %d", crv),
		}
	}
	rawX, ok := tmpMap[keyLabelX]
	if !ok {
		return common.InvalidKeyMaterialError{
			Item:   "COSE key",
			Reason: "missing public key parameter",
		}
	}
	tmpKey := []byte{}
	if _, err := cbor.Decode(rawX, &tmpKey); err != nil {
		return cbor.NewDeserializeError("COSE key public key", err)
	}
	k.publicKey = tmpKey
	return nil
}

// CoseSign1 is a COSE single-signer signed message: serialized protected
// headers, unprotected headers, payload, and signature
type CoseSign1 struct {
	cbor.StructAsArray
	Protected   []byte
	Unprotected map[string]any
	Payload     []byte
	Signature   []byte
}

// sigStructure is the Sig_structure that is actually signed, per RFC 9052
type sigStructure struct {
	cbor.StructAsArray
	Context       string
	BodyProtected []byte
	ExternalAad   []byte
	Payload       []byte
}

func protectedHeaders() ([]byte, error) {
	return cbor.Encode(map[int64]int64{headerLabelAlg: algEdDSA})
}

func signedData(protected []byte, payload []byte) ([]byte, error) {
	return cbor.Encode(&sigStructure{
		Context:       sigContextSignature1,
		BodyProtected: protected,
		ExternalAad:   []byte{},
		Payload:       payload,
	})
}

// checkAlgorithm verifies that the serialized protected headers declare EdDSA
func checkAlgorithm(protected []byte) error {
	tmpMap := map[int64]int64{}
	if _, err := cbor.Decode(protected, &tmpMap); err != nil {
		return cbor.NewDeserializeError("protected headers", err)
	}
	if alg, ok := tmpMap[headerLabelAlg]; !ok || alg != algEdDSA {
		return common.InvalidSignatureError{
			Reason: "protected headers do not declare the EdDSA algorithm",
		}
	}
	return nil
}

// Envelope bundles a signed message with the key that signed it
type Envelope struct {
	Message CoseSign1
	Key     CoseKey
}

// VerifyResult reports the outcome of envelope verification
type VerifyResult struct {
	Verified bool
	Message  []byte
}

// BuildEnvelope signs a payload with the given signing key and returns the
// complete envelope
func BuildEnvelope(payload []byte, sk keys.SigningKey) (Envelope, error) {
	protected, err := protectedHeaders()
	if err != nil {
		return Envelope{}, err
	}
	toSign, err := signedData(protected, payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Message: CoseSign1{
			Protected:   protected,
			Unprotected: map[string]any{"hashed": false},
			Payload:     payload,
			Signature:   sk.Sign(toSign),
		},
		Key: NewCoseKey(sk.VerificationKey()),
	}, nil
}

// Verify checks the envelope signature against its payload and key. A
// structurally sound envelope whose signature doesn't match (a tampered
// payload, or the wrong key) returns Verified=false with no error; malformed
// structure is an error.
func (e Envelope) Verify() (VerifyResult, error) {
	if err := checkAlgorithm(e.Message.Protected); err != nil {
		return VerifyResult{}, err
	}
	toVerify, err := signedData(e.Message.Protected, e.Message.Payload)
	if err != nil {
		return VerifyResult{}, err
	}
	vk, err := e.Key.PublicKey()
	if err != nil {
		return VerifyResult{}, err
	}
	valid, err := vk.Verify(toVerify, e.Message.Signature)
	if err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{
		Verified: valid,
		Message:  e.Message.Payload,
	}, nil
}

// envelopeJson is a convenience type for marshaling/unmarshaling Envelope
// to/from its hex interchange form
type envelopeJson struct {
	Signature string `json:"signature"`
	Key       string `json:"key"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	messageCbor, err := cbor.Encode(&e.Message)
	if err != nil {
		return nil, err
	}
	keyCbor, err := cbor.Encode(&e.Key)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelopeJson{
		Signature: hex.EncodeToString(messageCbor),
		Key:       hex.EncodeToString(keyCbor),
	})
}

func (e *Envelope) UnmarshalJSON(jsonData []byte) error {
	tmpJson := envelopeJson{}
	if err := json.Unmarshal(jsonData, &tmpJson); err != nil {
		return err
	}
	messageCbor, err := hex.DecodeString(tmpJson.Signature)
	if err != nil {
		return common.InvalidHexError{Item: "envelope signature", Err: err}
	}
	keyCbor, err := hex.DecodeString(tmpJson.Key)
	if err != nil {
		return common.InvalidHexError{Item: "envelope key", Err: err}
	}
	var tmpMessage CoseSign1
	if _, err := cbor.Decode(messageCbor, &tmpMessage); err != nil {
		return cbor.NewDeserializeError("COSE message", err)
	}
	var tmpKey CoseKey
	if _, err := cbor.Decode(keyCbor, &tmpKey); err != nil {
		return err
	}
	e.Message = tmpMessage
	e.Key = tmpKey
	return nil
}

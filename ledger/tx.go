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

package ledger

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/cardano-tx/keys"
	"github.com/blinklabs-io/cardano-tx/ledger/common"
	"github.com/blinklabs-io/plutigo/data"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// TransactionInput references an output of a previous transaction by
// transaction ID and output index
type TransactionInput struct {
	cbor.StructAsArray
	TxId        common.TransactionId
	OutputIndex uint32
}

// NewTransactionInput creates a TransactionInput from a transaction ID in hex
// and an output index. It panics on malformed arguments, since those are
// build-time mistakes rather than runtime conditions.
func NewTransactionInput(hash string, idx int) TransactionInput {
	tmpHash, err := hex.DecodeString(hash)
	if err != nil {
		panic(fmt.Sprintf("failed to decode transaction hash: %s", err))
	}
	if len(tmpHash) != common.Blake2b256Size {
		panic("transaction hash is not 32 bytes")
	}
	if idx < 0 || idx > math.MaxUint32 {
		panic("index out of range")
	}
	return TransactionInput{
		TxId:        common.Blake2b256(tmpHash),
		OutputIndex: uint32(idx),
	}
}

// NewTransactionInputFromCbor creates a TransactionInput from its CBOR
// encoding
func NewTransactionInputFromCbor(cborData []byte) (*TransactionInput, error) {
	var ret TransactionInput
	if _, err := cbor.Decode(cborData, &ret); err != nil {
		return nil, cbor.NewDeserializeError("transaction input", err)
	}
	return &ret, nil
}

func (i TransactionInput) Id() common.TransactionId {
	return i.TxId
}

func (i TransactionInput) Index() uint32 {
	return i.OutputIndex
}

func (i TransactionInput) Utxorpc() *utxorpc.TxInput {
	return &utxorpc.TxInput{
		TxHash:      i.TxId.Bytes(),
		OutputIndex: i.OutputIndex,
	}
}

func (i TransactionInput) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		0,
		data.NewByteString(i.TxId.Bytes()),
		data.NewInteger(new(big.Int).SetUint64(uint64(i.OutputIndex))),
	)
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxId, i.OutputIndex)
}

func (i TransactionInput) MarshalJSON() ([]byte, error) {
	return []byte("\"" + i.String() + "\""), nil
}

// TransactionOutput sends a Value to an address
type TransactionOutput struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	OutputAddress common.Address `json:"address"`
	OutputAmount  common.Value   `json:"amount"`
}

// NewTransactionOutput creates a TransactionOutput from an address and a
// Value
func NewTransactionOutput(
	address common.Address,
	amount common.Value,
) TransactionOutput {
	return TransactionOutput{
		OutputAddress: address,
		OutputAmount:  amount,
	}
}

// NewTransactionOutputFromCbor creates a TransactionOutput from its CBOR
// encoding
func NewTransactionOutputFromCbor(cborData []byte) (*TransactionOutput, error) {
	var ret TransactionOutput
	if _, err := cbor.Decode(cborData, &ret); err != nil {
		return nil, cbor.NewDeserializeError("transaction output", err)
	}
	return &ret, nil
}

func (o *TransactionOutput) UnmarshalCBOR(cborData []byte) error {
	return o.UnmarshalCbor(cborData, o)
}

func (o *TransactionOutput) MarshalCBOR() ([]byte, error) {
	if cborData := o.Cbor(); cborData != nil {
		return cborData, nil
	}
	return cbor.EncodeGeneric(o)
}

func (o TransactionOutput) Address() common.Address {
	return o.OutputAddress
}

func (o TransactionOutput) Amount() uint64 {
	return o.OutputAmount.Coin
}

func (o TransactionOutput) Value() common.Value {
	return o.OutputAmount
}

func (o TransactionOutput) Assets() *common.MultiAsset[common.MultiAssetTypeOutput] {
	return o.OutputAmount.Assets
}

func (o TransactionOutput) Utxorpc() *utxorpc.TxOutput {
	return &utxorpc.TxOutput{
		Address: o.OutputAddress.Bytes(),
		Coin:    o.Amount(),
	}
}

// TransactionBody is the signed portion of a transaction. It's encoded as a
// map with integer keys; optional fields are omitted entirely when unset.
//
// Collateral inputs and required signers distinguish between absent and
// empty-but-present, so they are pointers to slices: a nil pointer omits the
// key and a pointer to an empty slice encodes an empty list.
type TransactionBody struct {
	cbor.DecodeStoreCbor
	hash                    *common.Blake2b256
	TxInputs                []TransactionInput                            `cbor:"0,keyasint"`
	TxOutputs               []TransactionOutput                           `cbor:"1,keyasint"`
	TxFee                   uint64                                        `cbor:"2,keyasint"`
	Ttl                     uint64                                        `cbor:"3,keyasint,omitempty"`
	TxWithdrawals           map[*common.Address]uint64                    `cbor:"5,keyasint,omitempty"`
	TxAuxDataHash           *common.Blake2b256                            `cbor:"7,keyasint,omitempty"`
	TxValidityIntervalStart uint64                                        `cbor:"8,keyasint,omitempty"`
	TxMint                  *common.MultiAsset[common.MultiAssetTypeMint] `cbor:"9,keyasint,omitempty"`
	TxScriptDataHash        *common.Blake2b256                            `cbor:"11,keyasint,omitempty"`
	TxCollateral            *[]TransactionInput                           `cbor:"13,keyasint,omitempty"`
	TxRequiredSigners       *[]common.AddrKeyHash                         `cbor:"14,keyasint,omitempty"`
	TxNetworkId             *uint8                                        `cbor:"15,keyasint,omitempty"`
}

// NewTransactionBodyFromCbor creates a TransactionBody from its CBOR encoding
func NewTransactionBodyFromCbor(cborData []byte) (*TransactionBody, error) {
	var ret TransactionBody
	if _, err := cbor.Decode(cborData, &ret); err != nil {
		return nil, cbor.NewDeserializeError("transaction body", err)
	}
	return &ret, nil
}

func (b *TransactionBody) UnmarshalCBOR(cborData []byte) error {
	return b.UnmarshalCbor(cborData, b)
}

func (b *TransactionBody) MarshalCBOR() ([]byte, error) {
	if cborData := b.Cbor(); cborData != nil {
		return cborData, nil
	}
	return cbor.EncodeGeneric(b)
}

// Hash returns the Blake2b256 hash of the canonical CBOR encoding of the
// body. The hash is computed on first use and memoized, along with the
// encoding it was computed from, so that a body decoded from the wire hashes
// to its original bytes.
func (b *TransactionBody) Hash() common.Blake2b256 {
	if b.hash == nil {
		cborData := b.Cbor()
		if cborData == nil {
			tmpCbor, err := cbor.Encode(b)
			if err != nil {
				panic(
					fmt.Sprintf("failed to encode transaction body: %s", err),
				)
			}
			b.SetCbor(tmpCbor)
			cborData = tmpCbor
		}
		tmpHash := common.Blake2b256Hash(cborData)
		b.hash = &tmpHash
	}
	return *b.hash
}

// Id returns the transaction ID, which is the hash of the transaction body
func (b *TransactionBody) Id() common.TransactionId {
	return b.Hash()
}

func (b *TransactionBody) Inputs() []TransactionInput {
	return b.TxInputs
}

func (b *TransactionBody) Outputs() []TransactionOutput {
	return b.TxOutputs
}

func (b *TransactionBody) Fee() uint64 {
	return b.TxFee
}

func (b *TransactionBody) TTL() uint64 {
	return b.Ttl
}

func (b *TransactionBody) Withdrawals() map[*common.Address]uint64 {
	return b.TxWithdrawals
}

func (b *TransactionBody) AuxDataHash() *common.Blake2b256 {
	return b.TxAuxDataHash
}

func (b *TransactionBody) ValidityIntervalStart() uint64 {
	return b.TxValidityIntervalStart
}

func (b *TransactionBody) Mint() *common.MultiAsset[common.MultiAssetTypeMint] {
	return b.TxMint
}

func (b *TransactionBody) ScriptDataHash() *common.Blake2b256 {
	return b.TxScriptDataHash
}

func (b *TransactionBody) Collateral() []TransactionInput {
	if b.TxCollateral == nil {
		return nil
	}
	return *b.TxCollateral
}

func (b *TransactionBody) RequiredSigners() []common.AddrKeyHash {
	if b.TxRequiredSigners == nil {
		return nil
	}
	return *b.TxRequiredSigners
}

func (b *TransactionBody) NetworkId() *uint8 {
	return b.TxNetworkId
}

func (b *TransactionBody) Utxorpc() *utxorpc.Tx {
	txi := make([]*utxorpc.TxInput, 0, len(b.TxInputs))
	txo := make([]*utxorpc.TxOutput, 0, len(b.TxOutputs))
	for _, i := range b.Inputs() {
		txi = append(txi, i.Utxorpc())
	}
	for _, o := range b.Outputs() {
		txo = append(txo, o.Utxorpc())
	}
	return &utxorpc.Tx{
		Inputs:  txi,
		Outputs: txo,
		Fee:     b.Fee(),
		Hash:    b.Hash().Bytes(),
	}
}

// TransactionWitnessSet holds the witnesses attesting a transaction. It's
// encoded as a map with integer keys, all optional.
type TransactionWitnessSet struct {
	cbor.DecodeStoreCbor
	VkeyWitnesses      []common.VkeyWitness      `cbor:"0,keyasint,omitempty"`
	WsNativeScripts    []cbor.RawMessage         `cbor:"1,keyasint,omitempty"`
	BootstrapWitnesses []common.BootstrapWitness `cbor:"2,keyasint,omitempty"`
}

func (w *TransactionWitnessSet) UnmarshalCBOR(cborData []byte) error {
	return w.UnmarshalCbor(cborData, w)
}

func (w *TransactionWitnessSet) MarshalCBOR() ([]byte, error) {
	if cborData := w.Cbor(); cborData != nil {
		return cborData, nil
	}
	return cbor.EncodeGeneric(w)
}

func (w TransactionWitnessSet) Vkey() []common.VkeyWitness {
	return w.VkeyWitnesses
}

func (w TransactionWitnessSet) NativeScripts() []cbor.RawMessage {
	return w.WsNativeScripts
}

func (w TransactionWitnessSet) Bootstrap() []common.BootstrapWitness {
	return w.BootstrapWitnesses
}

// Transaction is a complete transaction: body, witnesses, validity flag, and
// optional auxiliary data. It's encoded as a 4-element array; absent
// auxiliary data encodes as null.
type Transaction struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body       TransactionBody
	WitnessSet TransactionWitnessSet
	TxIsValid  bool
	TxMetadata *cbor.LazyValue
}

// NewTransaction creates a Transaction from a body and witness set. The
// validity flag starts out true.
func NewTransaction(
	body TransactionBody,
	witnessSet TransactionWitnessSet,
) Transaction {
	return Transaction{
		Body:       body,
		WitnessSet: witnessSet,
		TxIsValid:  true,
	}
}

// NewTransactionFromCbor creates a Transaction from its CBOR encoding
func NewTransactionFromCbor(cborData []byte) (*Transaction, error) {
	var ret Transaction
	if _, err := cbor.Decode(cborData, &ret); err != nil {
		return nil, cbor.NewDeserializeError("transaction", err)
	}
	return &ret, nil
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	return t.UnmarshalCbor(cborData, t)
}

func (t *Transaction) MarshalCBOR() ([]byte, error) {
	if cborData := t.DecodeStoreCbor.Cbor(); cborData != nil {
		return cborData, nil
	}
	return cbor.EncodeGeneric(t)
}

// Hash returns the transaction ID, which is the hash of the transaction body
func (t *Transaction) Hash() common.Blake2b256 {
	return t.Body.Hash()
}

func (t *Transaction) Id() common.TransactionId {
	return t.Body.Id()
}

func (t *Transaction) IsValid() bool {
	return t.TxIsValid
}

func (t *Transaction) Metadata() *cbor.LazyValue {
	return t.TxMetadata
}

func (t *Transaction) Inputs() []TransactionInput {
	return t.Body.Inputs()
}

func (t *Transaction) Outputs() []TransactionOutput {
	return t.Body.Outputs()
}

func (t *Transaction) Fee() uint64 {
	return t.Body.Fee()
}

// Sign adds a vkey witness for the given signing key over the transaction
// body hash. Any stored transaction encoding is discarded, since the witness
// set changed.
func (t *Transaction) Sign(sk keys.SigningKey) {
	bodyHash := t.Body.Hash()
	witness := common.NewVkeyWitness(
		sk.VerificationKey().Bytes(),
		sk.Sign(bodyHash.Bytes()),
	)
	t.WitnessSet.VkeyWitnesses = append(t.WitnessSet.VkeyWitnesses, witness)
	t.WitnessSet.SetCbor(nil)
	t.SetCbor(nil)
}

// VerifyWitnesses checks every vkey witness signature against the transaction
// body hash. It returns an InvalidSignatureError for the first witness that
// fails.
func (t *Transaction) VerifyWitnesses() error {
	bodyHash := t.Body.Hash()
	for _, witness := range t.WitnessSet.Vkey() {
		valid, err := common.VerifyVKeySignature(
			witness.Vkey,
			witness.Signature,
			bodyHash.Bytes(),
		)
		if err != nil {
			return err
		}
		if !valid {
			return common.InvalidSignatureError{
				Reason: fmt.Sprintf(
					"witness for key hash %s does not attest transaction %s",
					witness.VkeyHash(),
					bodyHash,
				),
			}
		}
	}
	return nil
}

// Cbor returns the canonical CBOR encoding of the transaction, encoding it
// on demand if no stored encoding exists
func (t *Transaction) Cbor() []byte {
	if cborData := t.DecodeStoreCbor.Cbor(); cborData != nil {
		return cborData
	}
	cborData, err := cbor.Encode(t)
	if err != nil {
		panic(fmt.Sprintf("failed to encode transaction: %s", err))
	}
	return cborData
}

func (t Transaction) Utxorpc() *utxorpc.Tx {
	return t.Body.Utxorpc()
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(
		struct {
			Id         string                `json:"id"`
			Body       *TransactionBody      `json:"body"`
			WitnessSet TransactionWitnessSet `json:"witnessSet"`
			IsValid    bool                  `json:"isValid"`
		}{
			Id:         t.Body.Id().String(),
			Body:       &t.Body,
			WitnessSet: t.WitnessSet,
			IsValid:    t.TxIsValid,
		},
	)
}

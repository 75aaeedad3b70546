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
	"maps"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/plutigo/data"
)

type (
	MultiAssetTypeOutput = uint64
	MultiAssetTypeMint   = int64
)

// Asset represents the quantities of a single policy's tokens, keyed by asset
// name. It's used for TX outputs (uint64) and TX asset minting (int64 to allow
// for negative values for burning).
//
// All operations are pure: they leave their operands untouched and return new
// values. Subtraction never clamps; any negative result component is an
// InvalidOperationError.
type Asset[T int64 | uint64] map[cbor.ByteString]T

// NewAssetFromNames is a convenience constructor building an Asset from
// name bytes
func NewAssetFromNames[T int64 | uint64](quantities map[string]T) Asset[T] {
	ret := make(Asset[T], len(quantities))
	for name, amount := range quantities {
		ret[cbor.NewByteString([]byte(name))] = amount
	}
	return ret
}

// Add returns the key-wise sum of the two operands. Keys present in either
// operand appear in the result.
func (a Asset[T]) Add(other Asset[T]) Asset[T] {
	ret := maps.Clone(a)
	if ret == nil {
		ret = Asset[T]{}
	}
	for name, amount := range other {
		ret[name] = addAmounts(ret[name], amount)
	}
	return ret
}

// Subtract returns the key-wise difference of the two operands. A component
// that would go negative is an InvalidOperationError. Components that cancel
// to exactly zero are removed from the result.
func (a Asset[T]) Subtract(other Asset[T]) (Asset[T], error) {
	ret := maps.Clone(a)
	if ret == nil {
		ret = Asset[T]{}
	}
	for name, amount := range other {
		newAmount, ok := subtractAmounts(ret[name], amount)
		if !ok {
			return nil, InvalidOperationError{
				Operation: "subtract",
				Reason:    "quantity of asset " + name.String() + " would be negative",
			}
		}
		if amountIsZero(newAmount) {
			delete(ret, name)
		} else {
			ret[name] = newAmount
		}
	}
	return ret, nil
}

// Compare returns true if the two operands hold the same quantities for the
// same names. Zero-quantity entries are ignored.
func (a Asset[T]) Compare(other Asset[T]) bool {
	tmpData := a.normalize()
	otherData := other.normalize()
	if len(tmpData) != len(otherData) {
		return false
	}
	for name, amount := range otherData {
		if !amountsEqual(amount, tmpData[name]) {
			return false
		}
	}
	return true
}

// LessThanOrEqual implements the partial order on Assets: true if every name
// in the receiver also appears in the other operand with at least the same
// quantity. A name present here but absent there blocks the comparison.
func (a Asset[T]) LessThanOrEqual(other Asset[T]) bool {
	otherData := other.normalize()
	for name, amount := range a.normalize() {
		otherAmount, ok := otherData[name]
		if !ok {
			return false
		}
		if !amountLessThanOrEqual(amount, otherAmount) {
			return false
		}
	}
	return true
}

func (a Asset[T]) normalize() Asset[T] {
	ret := Asset[T]{}
	for name, amount := range a {
		if !amountIsZero(amount) {
			ret[name] = amount
		}
	}
	return ret
}

// MultiAsset represents a collection of policies, assets, and quantities
type MultiAsset[T int64 | uint64] struct {
	data map[Blake2b224]Asset[T]
}

// NewMultiAsset creates a MultiAsset with the specified data
func NewMultiAsset[T int64 | uint64](
	data map[Blake2b224]Asset[T],
) MultiAsset[T] {
	if data == nil {
		data = make(map[Blake2b224]Asset[T])
	}
	return MultiAsset[T]{data: data}
}

// multiAssetJson is a convenience type for marshaling/unmarshaling MultiAsset to/from JSON
type multiAssetJson[T int64 | uint64] struct {
	Name        string `json:"name"`
	NameHex     string `json:"nameHex"`
	PolicyId    string `json:"policyId"`
	Fingerprint string `json:"fingerprint"`
	Amount      T      `json:"amount"`
}

func (m *MultiAsset[T]) UnmarshalCBOR(cborData []byte) error {
	_, err := cbor.Decode(cborData, &(m.data))
	return err
}

func (m *MultiAsset[T]) MarshalCBOR() ([]byte, error) {
	// The CBOR library is configured with SortCoreDeterministic, so direct encoding
	// of the map produces deterministic output without manual sorting
	return cbor.Encode(m.data)
}

func (m MultiAsset[T]) MarshalJSON() ([]byte, error) {
	tmpAssets := make([]multiAssetJson[T], 0, len(m.data))
	for policyId, policyData := range m.data {
		for assetName, amount := range policyData {
			tmpObj := multiAssetJson[T]{
				Name:     string(assetName.Bytes()),
				NameHex:  hex.EncodeToString(assetName.Bytes()),
				Amount:   amount,
				PolicyId: policyId.String(),
				Fingerprint: NewAssetFingerprint(
					policyId.Bytes(),
					assetName.Bytes(),
				).String(),
			}
			tmpAssets = append(tmpAssets, tmpObj)
		}
	}
	return json.Marshal(&tmpAssets)
}

func (m *MultiAsset[T]) UnmarshalJSON(jsonData []byte) error {
	tmpAssets := []multiAssetJson[T]{}
	if err := json.Unmarshal(jsonData, &tmpAssets); err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[Blake2b224]Asset[T])
	}
	for _, tmp := range tmpAssets {
		policy, err := NewBlake2b224FromHex(tmp.PolicyId)
		if err != nil {
			return err
		}
		nameBytes, err := hex.DecodeString(tmp.NameHex)
		if err != nil {
			return InvalidHexError{Item: "asset name", Err: err}
		}
		if _, ok := m.data[policy]; !ok {
			m.data[policy] = Asset[T]{}
		}
		m.data[policy][cbor.NewByteString(nameBytes)] = tmp.Amount
	}
	return nil
}

func (m *MultiAsset[T]) ToPlutusData() data.PlutusData {
	tmpData := make([][2]data.PlutusData, 0, len(m.data))
	// Sort policy IDs
	policyKeys := slices.Collect(maps.Keys(m.data))
	slices.SortFunc(
		policyKeys,
		func(a, b Blake2b224) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
	)
	for _, policyId := range policyKeys {
		policyData := m.data[policyId]
		tmpPolicyData := make([][2]data.PlutusData, 0, len(policyData))
		// Sort asset names
		assetKeys := slices.Collect(maps.Keys(policyData))
		slices.SortFunc(
			assetKeys,
			func(a, b cbor.ByteString) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
		)
		for _, assetName := range assetKeys {
			amount := policyData[assetName]
			tmpPolicyData = append(
				tmpPolicyData,
				[2]data.PlutusData{
					data.NewByteString(assetName.Bytes()),
					data.NewInteger(amountToBigInt(amount)),
				},
			)
		}
		tmpData = append(
			tmpData,
			[2]data.PlutusData{
				data.NewByteString(policyId.Bytes()),
				data.NewMap(tmpPolicyData),
			},
		)
	}
	return data.NewMap(tmpData)
}

// Policies returns the policy IDs present in the MultiAsset
func (m MultiAsset[T]) Policies() []Blake2b224 {
	ret := make([]Blake2b224, 0, len(m.data))
	for policyId := range m.data {
		ret = append(ret, policyId)
	}
	return ret
}

// Assets returns the asset names present for a policy ID
func (m MultiAsset[T]) Assets(policyId Blake2b224) [][]byte {
	assets, ok := m.data[policyId]
	if !ok {
		return nil
	}
	ret := make([][]byte, 0, len(assets))
	for assetName := range assets {
		ret = append(ret, assetName.Bytes())
	}
	return ret
}

// Asset returns the quantity of a specific (policy, name) pair
func (m MultiAsset[T]) Asset(policyId Blake2b224, assetName []byte) T {
	policy, ok := m.data[policyId]
	if !ok {
		var zero T
		return zero
	}
	return policy[cbor.NewByteString(assetName)]
}

// Add returns the policy-wise sum of the two operands. A policy present in
// only one operand behaves as if the other supplied an empty Asset.
func (m MultiAsset[T]) Add(other MultiAsset[T]) MultiAsset[T] {
	ret := make(map[Blake2b224]Asset[T], len(m.data))
	for policy, assets := range m.data {
		ret[policy] = maps.Clone(assets)
	}
	for policy, assets := range other.data {
		ret[policy] = ret[policy].Add(assets)
	}
	return MultiAsset[T]{data: ret}
}

// Subtract returns the policy-wise difference of the two operands. Any
// (policy, name) quantity that would go negative is an InvalidOperationError:
// subtraction encodes a ledger-balance precondition check, not plain key-wise
// arithmetic. Policies whose assets fully cancel are removed from the result.
func (m MultiAsset[T]) Subtract(other MultiAsset[T]) (MultiAsset[T], error) {
	ret := make(map[Blake2b224]Asset[T], len(m.data))
	for policy, assets := range m.data {
		ret[policy] = maps.Clone(assets)
	}
	for policy, assets := range other.data {
		newAssets, err := ret[policy].Subtract(assets)
		if err != nil {
			return MultiAsset[T]{}, err
		}
		if len(newAssets) == 0 {
			delete(ret, policy)
		} else {
			ret[policy] = newAssets
		}
	}
	return MultiAsset[T]{data: ret}, nil
}

// Compare returns true if the two operands hold the same quantities for the
// same (policy, name) pairs. Zero-quantity entries are ignored.
func (m MultiAsset[T]) Compare(other MultiAsset[T]) bool {
	tmpData := m.normalize()
	otherData := other.normalize()
	if len(otherData) != len(tmpData) {
		return false
	}
	for policy, assets := range otherData {
		if !tmpData[policy].Compare(assets) {
			return false
		}
	}
	return true
}

// LessThanOrEqual implements the partial order on MultiAssets by lifting the
// Asset partial order per policy ID
func (m MultiAsset[T]) LessThanOrEqual(other MultiAsset[T]) bool {
	otherData := other.normalize()
	for policy, assets := range m.normalize() {
		otherAssets, ok := otherData[policy]
		if !ok {
			return false
		}
		if !assets.LessThanOrEqual(otherAssets) {
			return false
		}
	}
	return true
}

func (m MultiAsset[T]) normalize() map[Blake2b224]Asset[T] {
	ret := map[Blake2b224]Asset[T]{}
	for policy, assets := range m.data {
		tmpAssets := assets.normalize()
		if len(tmpAssets) > 0 {
			ret[policy] = tmpAssets
		}
	}
	return ret
}

// String returns a stable, human-friendly representation of the MultiAsset.
// Output format: [<policyId>.<assetNameHex>=<amount>, ...] sorted by policyId, then asset name
func (m MultiAsset[T]) String() string {
	norm := m.normalize()
	if len(norm) == 0 {
		return "[]"
	}

	policies := slices.Collect(maps.Keys(norm))
	slices.SortFunc(
		policies,
		func(a, b Blake2b224) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
	)

	var b strings.Builder
	b.WriteByte('[')
	first := true
	for _, pid := range policies {
		assets := norm[pid]
		names := slices.Collect(maps.Keys(assets))
		slices.SortFunc(
			names,
			func(a, b cbor.ByteString) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
		)

		for _, name := range names {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(pid.String())
			b.WriteByte('.')
			b.WriteString(hex.EncodeToString(name.Bytes()))
			b.WriteByte('=')
			b.WriteString(amountToString(assets[name]))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func addAmounts[T int64 | uint64](a, b T) T {
	return a + b
}

// subtractAmounts returns a - b and whether the result stayed non-negative
func subtractAmounts[T int64 | uint64](a, b T) (T, bool) {
	switch av := any(a).(type) {
	case uint64:
		bv := any(b).(uint64)
		if av < bv {
			var zero T
			return zero, false
		}
		return any(av - bv).(T), true
	case int64:
		bv := any(b).(int64)
		ret := av - bv
		return any(ret).(T), ret >= 0
	}
	// Unreachable with the current type constraint
	var zero T
	return zero, false
}

func amountIsZero[T int64 | uint64](a T) bool {
	var zero T
	return a == zero
}

func amountsEqual[T int64 | uint64](a, b T) bool {
	return a == b
}

func amountLessThanOrEqual[T int64 | uint64](a, b T) bool {
	return a <= b
}

func amountToBigInt[T int64 | uint64](a T) *big.Int {
	switch av := any(a).(type) {
	case uint64:
		return new(big.Int).SetUint64(av)
	case int64:
		return big.NewInt(av)
	}
	return nil
}

func amountToString[T int64 | uint64](a T) string {
	switch av := any(a).(type) {
	case uint64:
		return strconv.FormatUint(av, 10)
	case int64:
		return strconv.FormatInt(av, 10)
	}
	return ""
}

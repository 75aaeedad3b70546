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
	"fmt"

	"github.com/blinklabs-io/cardano-tx/cbor"
)

// Value represents an amount of lovelace together with any native assets.
// On the wire it's either a bare coin quantity or a [coin, multiasset] pair,
// depending on whether native assets are present.
type Value struct {
	cbor.StructAsArray
	Coin   uint64
	Assets *MultiAsset[MultiAssetTypeOutput]
}

// NewValue creates a Value holding only lovelace
func NewValue(coin uint64) Value {
	return Value{Coin: coin}
}

// NewValueWithAssets creates a Value holding lovelace and native assets
func NewValueWithAssets(
	coin uint64,
	assets MultiAsset[MultiAssetTypeOutput],
) Value {
	return Value{
		Coin:   coin,
		Assets: &assets,
	}
}

func (v *Value) UnmarshalCBOR(cborData []byte) error {
	// A Value with no native assets is encoded as a bare coin quantity
	var tmpCoin uint64
	if _, err := cbor.Decode(cborData, &tmpCoin); err == nil {
		v.Coin = tmpCoin
		v.Assets = nil
		return nil
	}
	return cbor.DecodeGeneric(cborData, v)
}

func (v *Value) MarshalCBOR() ([]byte, error) {
	if v.Assets == nil {
		return cbor.Encode(v.Coin)
	}
	return cbor.EncodeGeneric(v)
}

// Add returns the component-wise sum of the two operands
func (v Value) Add(other Value) Value {
	ret := Value{Coin: v.Coin + other.Coin}
	if v.Assets != nil || other.Assets != nil {
		tmpAssets := v.assetsOrEmpty().Add(other.assetsOrEmpty())
		ret.Assets = &tmpAssets
	}
	return ret
}

// AddCoin returns a copy of the Value with the given amount of lovelace added
func (v Value) AddCoin(amount uint64) Value {
	ret := Value{Coin: v.Coin + amount}
	if v.Assets != nil {
		tmpAssets := v.Assets.Add(MultiAsset[MultiAssetTypeOutput]{})
		ret.Assets = &tmpAssets
	}
	return ret
}

// Subtract returns the component-wise difference of the two operands. Any
// component (the coin quantity or any native asset quantity) that would go
// negative is an InvalidOperationError.
func (v Value) Subtract(other Value) (Value, error) {
	if v.Coin < other.Coin {
		return Value{}, InvalidOperationError{
			Operation: "subtract",
			Reason:    "coin quantity would be negative",
		}
	}
	ret := Value{Coin: v.Coin - other.Coin}
	if v.Assets != nil || other.Assets != nil {
		tmpAssets, err := v.assetsOrEmpty().Subtract(other.assetsOrEmpty())
		if err != nil {
			return Value{}, err
		}
		ret.Assets = &tmpAssets
	}
	return ret, nil
}

// Compare returns true if the two operands hold the same coin quantity and
// the same native assets. A nil asset bundle and an empty one are equivalent.
func (v Value) Compare(other Value) bool {
	if v.Coin != other.Coin {
		return false
	}
	return v.assetsOrEmpty().Compare(other.assetsOrEmpty())
}

// LessThanOrEqual implements the partial order on Values: coin quantities are
// compared numerically and asset bundles via the MultiAsset partial order
func (v Value) LessThanOrEqual(other Value) bool {
	if v.Coin > other.Coin {
		return false
	}
	return v.assetsOrEmpty().LessThanOrEqual(other.assetsOrEmpty())
}

func (v Value) assetsOrEmpty() MultiAsset[MultiAssetTypeOutput] {
	if v.Assets == nil {
		return MultiAsset[MultiAssetTypeOutput]{}
	}
	return *v.Assets
}

func (v Value) String() string {
	if v.Assets == nil {
		return fmt.Sprintf("%d", v.Coin)
	}
	return fmt.Sprintf("%d + %s", v.Coin, v.Assets.String())
}

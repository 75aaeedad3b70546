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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1
)

// Address represents a payment address. The address payload is kept as the
// raw wire bytes; the header byte (type and network nibbles) is interpreted
// only to pick the bech32 prefix.
type Address struct {
	hrp  string
	data []byte
}

// NewAddress returns an Address based on the provided bech32 address string
func NewAddress(addr string) (Address, error) {
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return Address{}, fmt.Errorf("decode address: %w", err)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("decode address: %w", err)
	}
	return Address{
		hrp:  hrp,
		data: decoded,
	}, nil
}

// NewAddressFromBytes returns an Address based on the raw bytes provided.
// The bech32 prefix is inferred from the network nibble of the header byte.
func NewAddressFromBytes(addrBytes []byte) (Address, error) {
	if len(addrBytes) == 0 {
		return Address{}, errors.New("empty address bytes")
	}
	var hrp string
	if addrBytes[0]&AddressHeaderNetworkMask == AddressNetworkMainnet {
		hrp = "addr"
	} else {
		hrp = "addr_test"
	}
	ret := Address{
		hrp:  hrp,
		data: make([]byte, len(addrBytes)),
	}
	copy(ret.data, addrBytes)
	return ret, nil
}

// NetworkId returns the network nibble from the address header
func (a Address) NetworkId() uint {
	if len(a.data) == 0 {
		return 0
	}
	return uint(a.data[0] & AddressHeaderNetworkMask)
}

// Type returns the address type nibble from the address header
func (a Address) Type() uint8 {
	if len(a.data) == 0 {
		return 0
	}
	return (a.data[0] & AddressHeaderTypeMask) >> 4
}

// PaymentKeyHash returns the payment key hash portion of the address payload
func (a Address) PaymentKeyHash() Blake2b224 {
	if len(a.data) < AddressHashSize+1 {
		return NewBlake2b224(nil)
	}
	return NewBlake2b224(a.data[1 : AddressHashSize+1])
}

// Bytes returns the underlying bytes for the address
func (a Address) Bytes() []byte {
	ret := make([]byte, len(a.data))
	copy(ret, a.data)
	return ret
}

func (a *Address) UnmarshalCBOR(cborData []byte) error {
	tmpData := []byte{}
	if _, err := cbor.Decode(cborData, &tmpData); err != nil {
		return err
	}
	tmpAddr, err := NewAddressFromBytes(tmpData)
	if err != nil {
		return err
	}
	*a = tmpAddr
	return nil
}

func (a *Address) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a.data)
}

// String returns the bech32-encoded version of the address
func (a Address) String() string {
	convData, err := bech32.ConvertBits(a.data, 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting address to bech32: %s", err),
		)
	}
	encoded, err := bech32.Encode(a.hrp, convData)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error encoding address as bech32: %s", err),
		)
	}
	return encoded
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

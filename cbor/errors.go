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

package cbor

import (
	"errors"
	"fmt"
)

// Sentinel error for deserialization failures so callers can use errors.Is
var ErrDeserialize = errors.New("deserialize error")

// DeserializeError indicates that CBOR data did not match the shape expected
// by the destination type
type DeserializeError struct {
	Item string
	Err  error
}

func (e DeserializeError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("deserialize error: %v", e.Err)
	}
	return fmt.Sprintf("%s deserialize error: %v", e.Item, e.Err)
}

func (e DeserializeError) Unwrap() error { return e.Err }

func (DeserializeError) Is(target error) bool {
	return target == ErrDeserialize
}

// NewDeserializeError wraps a decode failure for the named item
func NewDeserializeError(item string, err error) error {
	return DeserializeError{Item: item, Err: err}
}

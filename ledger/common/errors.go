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
	"errors"
	"fmt"
)

// Sentinel errors so callers can match failure classes with errors.Is
var (
	ErrSizeMismatch       = errors.New("size mismatch")
	ErrInvalidHex         = errors.New("invalid hex")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	ErrInvalidSignature   = errors.New("invalid signature")
)

// SizeMismatchError indicates that a fixed-size identifier or key was
// constructed from a byte sequence of the wrong length
type SizeMismatchError struct {
	Item     string
	Expected int
	Actual   int
}

func (e SizeMismatchError) Error() string {
	return fmt.Sprintf(
		"wrong size for %s: expected %d bytes, got %d",
		e.Item,
		e.Expected,
		e.Actual,
	)
}

func (SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// InvalidHexError indicates that a hex string could not be decoded
type InvalidHexError struct {
	Item string
	Err  error
}

func (e InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex for %s: %v", e.Item, e.Err)
}

func (e InvalidHexError) Unwrap() error { return e.Err }

func (InvalidHexError) Is(target error) bool {
	return target == ErrInvalidHex
}

// InvalidOperationError indicates that an arithmetic precondition was violated,
// such as a subtraction that would produce a negative quantity
type InvalidOperationError struct {
	Operation string
	Reason    string
}

func (e InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %s: %s", e.Operation, e.Reason)
}

func (InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// InvalidKeyMaterialError indicates structurally malformed cryptographic key input
type InvalidKeyMaterialError struct {
	Item   string
	Reason string
}

func (e InvalidKeyMaterialError) Error() string {
	return fmt.Sprintf("invalid key material for %s: %s", e.Item, e.Reason)
}

func (InvalidKeyMaterialError) Is(target error) bool {
	return target == ErrInvalidKeyMaterial
}

// InvalidSignatureError indicates a structurally malformed signature. This is
// distinct from a well-formed signature that simply does not match the message.
type InvalidSignatureError struct {
	Reason string
}

func (e InvalidSignatureError) Error() string {
	return "invalid signature: " + e.Reason
}

func (InvalidSignatureError) Is(target error) bool {
	return target == ErrInvalidSignature
}

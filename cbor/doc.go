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

// Package cbor provides a thin wrapper around the fxamacker/cbor library
// configured for deterministic (canonical) encoding. Every transaction
// component round-trips through this package, and transaction hashes and
// signatures are computed over the bytes it produces, so identical values
// must always encode to identical bytes.
package cbor

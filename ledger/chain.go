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
	"context"

	"github.com/blinklabs-io/cardano-tx/cbor"
	"github.com/blinklabs-io/cardano-tx/ledger/common"
)

// ChainContext provides the chain-facing operations a transaction workflow
// needs. Implementations talk to a node, an indexer, or a test double.
type ChainContext interface {
	// FetchMetadata returns the auxiliary data for a transaction, or nil if
	// the transaction carries none
	FetchMetadata(
		ctx context.Context,
		txId common.TransactionId,
	) (*cbor.LazyValue, error)
	// SubmitTx submits a CBOR-encoded transaction and returns its ID
	SubmitTx(ctx context.Context, txCbor []byte) (common.TransactionId, error)
}

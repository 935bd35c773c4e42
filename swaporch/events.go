// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swaporch

import (
	"math/big"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	ethtypes "github.com/luxfi/geth/core/types"

	"github.com/luxfi/swaporch/contract"
)

// SwapExecutedTopic is topic0 of the log emitted on a successful
// executeSwap: SwapExecuted(sender, destToken, to) with
// (amountIn, amountOut) as data.
var SwapExecutedTopic = common.BytesToHash(crypto.Keccak256([]byte("SwapExecuted(address,address,address,uint256,uint256)")))

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(contract.PackAddressWord(addr))
}

func (o *SwapOrchestrator) emitSwapExecuted(
	accessibleState contract.AccessibleState,
	addr common.Address,
	sender, destToken, to common.Address,
	amountIn, amountOut *big.Int,
) {
	data := make([]byte, 0, 2*contract.WordLength)
	inWord := make([]byte, contract.WordLength)
	amountIn.FillBytes(inWord)
	outWord := make([]byte, contract.WordLength)
	amountOut.FillBytes(outWord)
	data = append(data, inWord...)
	data = append(data, outWord...)

	accessibleState.GetStateDB().AddLog(&ethtypes.Log{
		Address: addr,
		Topics: []common.Hash{
			SwapExecutedTopic,
			addressTopic(sender),
			addressTopic(destToken),
			addressTopic(to),
		},
		Data:        data,
		BlockNumber: accessibleState.GetBlockContext().Number().Uint64(),
	})
}

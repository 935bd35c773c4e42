// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swaporch

import (
	"fmt"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/swaporch/contract"
)

// setupSwap handles setupSwap(address sender, address recipient,
// uint256 amount): the custody transfer. Pulls [amount] of the source
// token from [sender] to [recipient] using the allowance [sender]
// previously granted the orchestrator. The precondition checks run before
// any token call; a failing token call reverts every write it made.
func (o *SwapOrchestrator) setupSwap(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	args []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasSetupSwap)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}

	words, err := wordArgs(args, 3)
	if err != nil {
		return nil, remainingGas, err
	}
	sender := contract.UnpackAddressWord(words[0])
	recipient := contract.UnpackAddressWord(words[1])
	amount := amountArg(words[2])

	source, _, _, configured := o.config()
	if !configured {
		return nil, remainingGas, ErrNotConfigured
	}
	if amount.Sign() == 0 {
		return nil, remainingGas, ErrZeroAmount
	}
	if recipient == (common.Address{}) {
		return nil, remainingGas, ErrZeroRecipient
	}

	state := accessibleState.GetStateDB()
	snapshot := state.Snapshot()
	if err := o.token.TransferFrom(state, source, addr, sender, recipient, amount); err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, fmt.Errorf("custody transfer: %w", err)
	}

	o.log.Debug("custody transfer", "sender", sender.Hex(), "recipient", recipient.Hex(), "amount", amount)
	return trueWord(), remainingGas, nil
}

// approveSwap handles approveSwap(address spender, uint256 amount): the
// allowance grant. The router's allowance over the orchestrator's custody
// becomes exactly [amount] — overwrite semantics, never unbounded, so a
// compromised router can drain at most one swap's input.
func (o *SwapOrchestrator) approveSwap(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	args []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasApproveSwap)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}

	words, err := wordArgs(args, 2)
	if err != nil {
		return nil, remainingGas, err
	}
	spender := contract.UnpackAddressWord(words[0])
	amount := amountArg(words[1])

	source, _, _, configured := o.config()
	if !configured {
		return nil, remainingGas, ErrNotConfigured
	}
	if amount.Sign() == 0 {
		return nil, remainingGas, ErrZeroAmount
	}
	if spender == (common.Address{}) {
		return nil, remainingGas, ErrZeroSpender
	}

	state := accessibleState.GetStateDB()
	snapshot := state.Snapshot()
	if err := o.token.Approve(state, source, addr, spender, amount); err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, fmt.Errorf("allowance grant: %w", err)
	}

	o.log.Debug("allowance granted", "spender", spender.Hex(), "amount", amount)
	return trueWord(), remainingGas, nil
}

// executeSwap handles executeSwap(address sender, uint256 amount,
// uint256 amountOutMin, address destToken, address to): the composed
// linear flow. Custody transfer, allowance grant and router swap run in
// order against one snapshot; any step failing reverts all of them,
// including the custody transfer, so no value is ever stranded in the
// orchestrator between transactions.
func (o *SwapOrchestrator) executeSwap(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	args []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasExecuteSwap)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}

	words, err := wordArgs(args, 5)
	if err != nil {
		return nil, remainingGas, err
	}
	sender := contract.UnpackAddressWord(words[0])
	amount := amountArg(words[1])
	amountOutMin := amountArg(words[2])
	destToken := contract.UnpackAddressWord(words[3])
	to := contract.UnpackAddressWord(words[4])

	source, routerAddr, grace, configured := o.config()
	if !configured || o.router == nil {
		return nil, remainingGas, ErrNotConfigured
	}

	// Preconditions, all before the first external call.
	if amount.Sign() == 0 {
		return nil, remainingGas, ErrZeroAmount
	}
	if amountOutMin.Sign() == 0 {
		return nil, remainingGas, ErrZeroAmountOutMin
	}
	if to == (common.Address{}) {
		return nil, remainingGas, ErrZeroRecipient
	}
	if destToken == (common.Address{}) {
		return nil, remainingGas, fmt.Errorf("%w: zero destination token", ErrInvalidInput)
	}
	if destToken == source {
		return nil, remainingGas, ErrSameToken
	}

	state := accessibleState.GetStateDB()
	blockTime := accessibleState.GetBlockContext().Timestamp()
	// Block time plus grace, never a caller-supplied deadline.
	deadline := blockTime + grace
	path := []common.Address{source, destToken}

	snapshot := state.Snapshot()

	// Custody transfer: pull the input into the orchestrator's custody.
	if err := o.token.TransferFrom(state, source, addr, sender, addr, amount); err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, fmt.Errorf("custody transfer: %w", err)
	}

	// Allowance grant, sized to exactly this swap's input and granted
	// immediately before the router call to keep the standing-allowance
	// window minimal.
	if err := o.token.Approve(state, source, addr, routerAddr, amount); err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, fmt.Errorf("allowance grant: %w", err)
	}

	amounts, err := o.router.SwapExactTokensForTokens(state, blockTime, addr, amount, amountOutMin, path, to, deadline)
	if err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, fmt.Errorf("router swap: %w", err)
	}

	amountOut := amounts[len(amounts)-1]
	o.emitSwapExecuted(accessibleState, addr, sender, destToken, to, amount, amountOut)
	o.log.Info("swap executed",
		"sender", sender.Hex(),
		"source", source.Hex(),
		"dest", destToken.Hex(),
		"amountIn", amount,
		"amountOut", amountOut,
	)

	out, err := contract.PackBigWord(amountOut)
	if err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, err
	}
	return out, remainingGas, nil
}

// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry documents the address scheme of the swap orchestration
// precompile family.
package registry

import "github.com/luxfi/geth/common"

// ============================================================================
// SWAP ORCHESTRATION ADDRESS SCHEME
// ============================================================================
//
// The family uses trailing-significant 20-byte addresses in the LP-9xxx
// DEX/Markets page:
//   Format: 0x0000000000000000000000000000000000009Fxx
//
// The address ends with the 16-bit LP number for easy identification.
//
//   LP-9012 → swap router (exchange, constant-product pools)
//   LP-9016 → swap orchestrator (custody → allowance → swap)
//
// Token contracts are ordinary account addresses and are NOT reserved here;
// the orchestrator learns the source-token address from its activation
// config.
const (
	// SwapRouterAddress hosts the exchange the orchestrator swaps through.
	SwapRouterAddress = "0x0000000000000000000000000000000000009012" // LP-9012

	// SwapOrchestratorAddress hosts the orchestrator precompile.
	SwapOrchestratorAddress = "0x0000000000000000000000000000000000009016" // LP-9016
)

// FamilyAddresses lists every reserved address of the family.
var FamilyAddresses = []common.Address{
	common.HexToAddress(SwapRouterAddress),
	common.HexToAddress(SwapOrchestratorAddress),
}

// IsFamilyAddress returns true if [addr] belongs to the swap orchestration
// family.
func IsFamilyAddress(addr common.Address) bool {
	for _, a := range FamilyAddresses {
		if addr == a {
			return true
		}
	}
	return false
}

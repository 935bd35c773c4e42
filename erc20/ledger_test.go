// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package erc20

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"
	"github.com/stretchr/testify/require"
)

// mockStateDB implements contract.StateDB over in-memory maps.
type mockStateDB struct {
	storage map[common.Address]map[common.Hash]common.Hash
	logs    []*ethtypes.Log
}

func newMockStateDB() *mockStateDB {
	return &mockStateDB{storage: make(map[common.Address]map[common.Hash]common.Hash)}
}

func (m *mockStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if m.storage[addr] == nil {
		return common.Hash{}
	}
	return m.storage[addr][key]
}

func (m *mockStateDB) SetState(addr common.Address, key, value common.Hash) common.Hash {
	if m.storage[addr] == nil {
		m.storage[addr] = make(map[common.Hash]common.Hash)
	}
	prev := m.storage[addr][key]
	m.storage[addr][key] = value
	return prev
}

func (m *mockStateDB) GetBalance(common.Address) *uint256.Int { return uint256.NewInt(0) }
func (m *mockStateDB) AddBalance(common.Address, *uint256.Int, tracing.BalanceChangeReason) uint256.Int {
	return uint256.Int{}
}
func (m *mockStateDB) SubBalance(common.Address, *uint256.Int, tracing.BalanceChangeReason) uint256.Int {
	return uint256.Int{}
}
func (m *mockStateDB) GetNonce(common.Address) uint64                           { return 0 }
func (m *mockStateDB) SetNonce(common.Address, uint64, tracing.NonceChangeReason) {}
func (m *mockStateDB) CreateAccount(common.Address)                             {}
func (m *mockStateDB) Exist(common.Address) bool                                { return true }
func (m *mockStateDB) AddLog(log *ethtypes.Log)                                 { m.logs = append(m.logs, log) }
func (m *mockStateDB) Logs() []*ethtypes.Log                                    { return m.logs }
func (m *mockStateDB) TxHash() common.Hash                                      { return common.Hash{} }
func (m *mockStateDB) Snapshot() int                                            { return 0 }
func (m *mockStateDB) RevertToSnapshot(int) {}

var (
	token   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice   = common.HexToAddress("0x2000000000000000000000000000000000000001")
	bob     = common.HexToAddress("0x2000000000000000000000000000000000000002")
	spender = common.HexToAddress("0x2000000000000000000000000000000000000003")
)

func TestMintAndSupply(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(1000)))
	require.Equal(t, int64(1000), ledger.BalanceOf(state, token, alice).Int64())
	require.Equal(t, int64(1000), ledger.TotalSupply(state, token).Int64())

	require.NoError(t, ledger.Mint(state, token, bob, big.NewInt(500)))
	require.Equal(t, int64(1500), ledger.TotalSupply(state, token).Int64())
}

func TestMintRejectsBadInput(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.ErrorIs(t, ledger.Mint(state, token, common.Address{}, big.NewInt(1)), ErrZeroAddress)
	require.ErrorIs(t, ledger.Mint(state, token, alice, nil), ErrInvalidAmount)
	require.ErrorIs(t, ledger.Mint(state, token, alice, big.NewInt(-1)), ErrInvalidAmount)
}

func TestMintSupplyOverflow(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	maxWord := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, ledger.Mint(state, token, alice, maxWord))
	require.ErrorIs(t, ledger.Mint(state, token, bob, big.NewInt(1)), ErrSupplyOverflow)
}

func TestTransfer(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(1000)))
	require.NoError(t, ledger.Transfer(state, token, alice, bob, big.NewInt(300)))

	require.Equal(t, int64(700), ledger.BalanceOf(state, token, alice).Int64())
	require.Equal(t, int64(300), ledger.BalanceOf(state, token, bob).Int64())
}

func TestTransferInsufficientBalance(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(100)))
	require.ErrorIs(t, ledger.Transfer(state, token, alice, bob, big.NewInt(101)), ErrInsufficientBalance)

	// Nothing moved on failure.
	require.Equal(t, int64(100), ledger.BalanceOf(state, token, alice).Int64())
	require.Equal(t, int64(0), ledger.BalanceOf(state, token, bob).Int64())
}

func TestTransferZeroRecipient(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(100)))
	require.ErrorIs(t, ledger.Transfer(state, token, alice, common.Address{}, big.NewInt(10)), ErrZeroAddress)
}

func TestApproveOverwrites(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Approve(state, token, alice, spender, big.NewInt(100)))
	require.Equal(t, int64(100), ledger.Allowance(state, token, alice, spender).Int64())

	// A second approve replaces the allowance, it does not add to it.
	require.NoError(t, ledger.Approve(state, token, alice, spender, big.NewInt(40)))
	require.Equal(t, int64(40), ledger.Allowance(state, token, alice, spender).Int64())

	// Zero resets.
	require.NoError(t, ledger.Approve(state, token, alice, spender, big.NewInt(0)))
	require.Equal(t, int64(0), ledger.Allowance(state, token, alice, spender).Int64())
}

func TestApproveZeroSpender(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.ErrorIs(t, ledger.Approve(state, token, alice, common.Address{}, big.NewInt(10)), ErrZeroAddress)
}

func TestTransferFrom(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(1000)))
	require.NoError(t, ledger.Approve(state, token, alice, spender, big.NewInt(400)))

	require.NoError(t, ledger.TransferFrom(state, token, spender, alice, bob, big.NewInt(150)))

	require.Equal(t, int64(850), ledger.BalanceOf(state, token, alice).Int64())
	require.Equal(t, int64(150), ledger.BalanceOf(state, token, bob).Int64())
	// The spent amount came off the allowance.
	require.Equal(t, int64(250), ledger.Allowance(state, token, alice, spender).Int64())
}

func TestTransferFromInsufficientAllowance(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(1000)))
	require.NoError(t, ledger.Approve(state, token, alice, spender, big.NewInt(100)))

	require.ErrorIs(t, ledger.TransferFrom(state, token, spender, alice, bob, big.NewInt(101)), ErrInsufficientAllowance)

	require.Equal(t, int64(1000), ledger.BalanceOf(state, token, alice).Int64())
	require.Equal(t, int64(100), ledger.Allowance(state, token, alice, spender).Int64())
}

func TestTransferFromInsufficientBalanceKeepsAllowance(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(50)))
	require.NoError(t, ledger.Approve(state, token, alice, spender, big.NewInt(100)))

	require.ErrorIs(t, ledger.TransferFrom(state, token, spender, alice, bob, big.NewInt(80)), ErrInsufficientBalance)

	// A failed pull never burns allowance.
	require.Equal(t, int64(100), ledger.Allowance(state, token, alice, spender).Int64())
	require.Equal(t, int64(50), ledger.BalanceOf(state, token, alice).Int64())
}

func TestBalancesIsolatedPerToken(t *testing.T) {
	state := newMockStateDB()
	ledger := NewLedger()
	otherToken := common.HexToAddress("0x1000000000000000000000000000000000000002")

	require.NoError(t, ledger.Mint(state, token, alice, big.NewInt(100)))
	require.Equal(t, int64(0), ledger.BalanceOf(state, otherToken, alice).Int64())
	require.Equal(t, int64(0), ledger.TotalSupply(state, otherToken).Int64())
}

// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swaporch

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/swaporch/contract"
	"github.com/luxfi/swaporch/modules"
	"github.com/luxfi/swaporch/precompileconfig"
	"github.com/luxfi/swaporch/registry"
	"github.com/luxfi/swaporch/router"
)

var _ contract.Configurator = (*configurator)(nil)
var _ contract.StatefulPrecompiledContract = (*SwapOrchestrator)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
const ConfigKey = "swapOrchestratorConfig"

// ContractAddress is the reserved address of the orchestrator (LP-9016).
var ContractAddress = common.HexToAddress(registry.SwapOrchestratorAddress)

// Module is the precompile module
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     SwapOrchestratorPrecompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

// Configure wires the activation config into the singleton. The source
// token, router address and grace window are read-only afterwards; there
// is no update entrypoint.
func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("expected config type %T, got %T: %v", &Config{}, cfg, cfg)
	}
	if err := config.Verify(chainConfig); err != nil {
		return err
	}

	exchange := router.NewExchange(config.Router, SwapOrchestratorPrecompile.token)
	SwapOrchestratorPrecompile.SetConfig(config.SourceToken, config.Router, config.DeadlineGraceSeconds, exchange)
	return nil
}

// Config implements the precompileconfig.Config interface
type Config struct {
	Upgrade              precompileconfig.Upgrade `json:"upgrade,omitempty"`
	SourceToken          common.Address           `json:"sourceToken,omitempty"`
	Router               common.Address           `json:"router,omitempty"`
	DeadlineGraceSeconds uint64                   `json:"deadlineGraceSeconds,omitempty"`
}

func (c *Config) Key() string {
	return ConfigKey
}

func (c *Config) Timestamp() *uint64 {
	return c.Upgrade.Timestamp()
}

func (c *Config) IsDisabled() bool {
	return c.Upgrade.Disable
}

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) &&
		c.SourceToken == other.SourceToken &&
		c.Router == other.Router &&
		c.DeadlineGraceSeconds == other.DeadlineGraceSeconds
}

func (c *Config) Verify(chainConfig precompileconfig.ChainConfig) error {
	if c.SourceToken == (common.Address{}) {
		return errors.New("source token address cannot be zero")
	}
	if c.Router == (common.Address{}) {
		return errors.New("router address cannot be zero")
	}
	if c.SourceToken == c.Router {
		return errors.New("source token and router cannot share an address")
	}
	if c.DeadlineGraceSeconds == 0 {
		return errors.New("deadline grace must be nonzero")
	}
	return nil
}

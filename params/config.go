package params

import (
	"fmt"
	"math/big"
)

// Different Network names
const (
	MainnetName = "acala"
	CanaryName  = "karura"
	TestnetName = "mandala"
	LocalName   = "local"
)

var (
	// MainnetChainConfig is the chain parameters of the production network.
	MainnetChainConfig = &ChainConfig{
		Name:    MainnetName,
		ChainID: big.NewInt(787),
	}

	// CanaryChainConfig is the chain parameters of the canary network.
	CanaryChainConfig = &ChainConfig{
		Name:    CanaryName,
		ChainID: big.NewInt(686),
	}

	// TestnetChainConfig is the chain parameters of the public test network.
	TestnetChainConfig = &ChainConfig{
		Name:    TestnetName,
		ChainID: big.NewInt(595),
	}

	// LocalChainConfig is used by development nodes and in tests.
	LocalChainConfig = &ChainConfig{
		Name:    LocalName,
		ChainID: big.NewInt(595),
	}
)

// ChainConfig is the core config which determines how transactions are
// signed for a given network.
type ChainConfig struct {
	Name    string   `json:"name"`
	ChainID *big.Int `json:"chainId"`
}

// ChainConfigByName returns the built-in config registered under name.
func ChainConfigByName(name string) (*ChainConfig, error) {
	switch name {
	case MainnetName:
		return MainnetChainConfig, nil
	case CanaryName:
		return CanaryChainConfig, nil
	case TestnetName:
		return TestnetChainConfig, nil
	case LocalName, "":
		return LocalChainConfig, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

// WithChainID returns a copy of c using chainID.
func (c *ChainConfig) WithChainID(chainID *big.Int) *ChainConfig {
	cpy := *c
	cpy.ChainID = new(big.Int).Set(chainID)
	return &cpy
}

// String implements the fmt.Stringer interface.
func (c *ChainConfig) String() string {
	return fmt.Sprintf("{Name: %v ChainID: %v}", c.Name, c.ChainID)
}

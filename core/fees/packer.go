// Package fees converts between the chain's resource limits and the two fee
// fields a generic Ethereum wallet understands.
//
// The storage entry count is packed into the low 16 bits of the gas price and
// the validity period count into the bits above them, on top of the chain's
// fee per gas. The ethereum gas limit is inflated by the gas-equivalent of the
// storage deposit so that gasPrice * gasLimit covers the whole charge.
package fees

import (
	"fmt"
	"math/big"

	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/pkg/errors"
)

var ErrInvalidFeeParameters = errors.New("invalid fee parameters")

var (
	storageEntrySize  = new(big.Int).SetUint64(params.StorageEntrySize)
	blockPeriodLength = new(big.Int).SetUint64(params.BlockPeriodLength)
	storageEntryMask  = new(big.Int).SetUint64(1<<params.StorageEntryBits - 1)
)

// Rates are the per-unit prices read from chain state. Both sides of a
// conversion must use the same rates.
type Rates struct {
	TxFeePerGas        *big.Int `json:"txFeePerGas"`
	StorageByteDeposit *big.Int `json:"storageByteDeposit"`
}

// DefaultRates returns the rates used when the chain has not been queried.
func DefaultRates() Rates {
	return Rates{
		TxFeePerGas:        new(big.Int).Set(params.DefaultTxFeePerGas),
		StorageByteDeposit: new(big.Int).Set(params.DefaultStorageByteDeposit),
	}
}

// Validate rejects rates that cannot be packed losslessly. The fee per gas
// must be positive and leave the storage bits of the gas price clear.
func (r Rates) Validate() error {
	if r.TxFeePerGas == nil || r.TxFeePerGas.Sign() <= 0 {
		return errors.Wrap(ErrInvalidFeeParameters, "txFeePerGas must be positive")
	}
	if r.StorageByteDeposit == nil || r.StorageByteDeposit.Sign() < 0 {
		return errors.Wrap(ErrInvalidFeeParameters, "storageByteDeposit must not be negative")
	}
	if new(big.Int).And(r.TxFeePerGas, storageEntryMask).Sign() != 0 {
		return errors.Wrapf(ErrInvalidFeeParameters, "txFeePerGas %s uses the low %d bits",
			r.TxFeePerGas, params.StorageEntryBits)
	}
	return nil
}

// gasPerStorageEntry is floor(storageByteDeposit * 64 / txFeePerGas).
func (r Rates) gasPerStorageEntry() *big.Int {
	deposit := new(big.Int).Mul(r.StorageByteDeposit, storageEntrySize)
	return deposit.Div(deposit, r.TxFeePerGas)
}

// NativeParams are the chain-native resource limits.
type NativeParams struct {
	GasLimit     *big.Int `json:"gasLimit"`
	StorageLimit *big.Int `json:"storageLimit"`
	ValidUntil   *big.Int `json:"validUntil"`
}

func (p NativeParams) String() string {
	return fmt.Sprintf("gasLimit=%v storageLimit=%v validUntil=%v", p.GasLimit, p.StorageLimit, p.ValidUntil)
}

// EthParams are the legacy Ethereum fee fields.
type EthParams struct {
	GasPrice *big.Int `json:"gasPrice"`
	GasLimit *big.Int `json:"gasLimit"`
}

// Fee is the amount a wallet reserves for the transaction.
func (p EthParams) Fee() *big.Int {
	if p.GasPrice == nil || p.GasLimit == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(p.GasPrice, p.GasLimit)
}

func (p EthParams) String() string {
	return fmt.Sprintf("gasPrice=%v gasLimit=%v", p.GasPrice, p.GasLimit)
}

// Encode packs native limits into a gas price and gas limit. Storage and
// validity are rounded up to whole entries and periods.
func Encode(native NativeParams, rates Rates) (EthParams, error) {
	if err := rates.Validate(); err != nil {
		return EthParams{}, err
	}
	if err := checkUnsigned(native.GasLimit, native.StorageLimit, native.ValidUntil); err != nil {
		return EthParams{}, err
	}

	blockPeriod := ceilDiv(native.ValidUntil, blockPeriodLength)
	storageEntryLimit := ceilDiv(native.StorageLimit, storageEntrySize)
	if storageEntryLimit.Cmp(storageEntryMask) > 0 {
		return EthParams{}, errors.Wrapf(ErrInvalidFeeParameters,
			"storage limit %v exceeds %d entries", native.StorageLimit, storageEntryMask)
	}

	gasPrice := new(big.Int).Lsh(blockPeriod, params.StorageEntryBits)
	gasPrice.Add(gasPrice, rates.TxFeePerGas)
	gasPrice.Add(gasPrice, storageEntryLimit)

	gasLimit := new(big.Int).Mul(rates.gasPerStorageEntry(), storageEntryLimit)
	gasLimit.Add(gasLimit, native.GasLimit)

	return EthParams{GasPrice: gasPrice, GasLimit: gasLimit}, nil
}

// Decode recovers native limits from a packed gas price and gas limit. Values
// below what Encode could have produced are rejected rather than wrapped.
func Decode(eth EthParams, rates Rates) (NativeParams, error) {
	if err := rates.Validate(); err != nil {
		return NativeParams{}, err
	}
	if err := checkUnsigned(eth.GasPrice, eth.GasLimit); err != nil {
		return NativeParams{}, err
	}

	storageEntryLimit := new(big.Int).And(eth.GasPrice, storageEntryMask)
	blockPeriod := new(big.Int).Sub(eth.GasPrice, storageEntryLimit)
	blockPeriod.Sub(blockPeriod, rates.TxFeePerGas)
	if blockPeriod.Sign() < 0 {
		return NativeParams{}, errors.Wrapf(ErrInvalidFeeParameters,
			"gasPrice %v is below txFeePerGas %v", eth.GasPrice, rates.TxFeePerGas)
	}
	blockPeriod.Rsh(blockPeriod, params.StorageEntryBits)

	gasLimit := new(big.Int).Mul(rates.gasPerStorageEntry(), storageEntryLimit)
	gasLimit.Sub(eth.GasLimit, gasLimit)
	if gasLimit.Sign() < 0 {
		return NativeParams{}, errors.Wrapf(ErrInvalidFeeParameters,
			"gasLimit %v does not cover %v storage entries", eth.GasLimit, storageEntryLimit)
	}

	return NativeParams{
		GasLimit:     gasLimit,
		StorageLimit: new(big.Int).Mul(storageEntryLimit, storageEntrySize),
		ValidUntil:   new(big.Int).Mul(blockPeriod, blockPeriodLength),
	}, nil
}

func ceilDiv(x, y *big.Int) *big.Int {
	q, m := new(big.Int).DivMod(x, y, new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func checkUnsigned(values ...*big.Int) error {
	for _, v := range values {
		if v == nil {
			return errors.Wrap(ErrInvalidFeeParameters, "missing value")
		}
		if v.Sign() < 0 {
			return errors.Wrapf(ErrInvalidFeeParameters, "negative value %v", v)
		}
	}
	return nil
}

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// StandardTx carries a legacy, access-list or dynamic-fee transaction. Its
// encoding and signing belong to go-ethereum; this package only routes it.
type StandardTx struct {
	Tx *ethtypes.Transaction
}

// go-ethereum transactions are immutable, sharing the pointer is a deep copy.
func (tx *StandardTx) copy() TxData { return &StandardTx{Tx: tx.Tx} }

func (tx *StandardTx) txType() byte           { return tx.Tx.Type() }
func (tx *StandardTx) chainID() *big.Int      { return tx.Tx.ChainId() }
func (tx *StandardTx) accessList() AccessList { return tx.Tx.AccessList() }
func (tx *StandardTx) data() []byte           { return tx.Tx.Data() }
func (tx *StandardTx) gas() *big.Int          { return new(big.Int).SetUint64(tx.Tx.Gas()) }
func (tx *StandardTx) gasPrice() *big.Int     { return tx.Tx.GasPrice() }
func (tx *StandardTx) value() *big.Int        { return tx.Tx.Value() }
func (tx *StandardTx) nonce() *big.Int        { return new(big.Int).SetUint64(tx.Tx.Nonce()) }
func (tx *StandardTx) to() *common.Address    { return tx.Tx.To() }

func (tx *StandardTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.Tx.RawSignatureValues()
}

// setSignatureValues is a no-op, standard transactions are signed through
// go-ethereum's own signers.
func (tx *StandardTx) setSignatureValues(chainID, v, r, s *big.Int) {}

func (tx *StandardTx) signed() bool {
	_, r, s := tx.Tx.RawSignatureValues()
	return r != nil && s != nil && (r.Sign() != 0 || s.Sign() != 0)
}

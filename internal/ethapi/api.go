// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package ethapi

import (
	"context"
	"math/big"

	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/eth/filters"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const senderCacheSize = 4096

// TransactionAPI exposes methods for the transaction intake path.
type TransactionAPI struct {
	b       Backend
	logger  log.Logger
	senders *lru.Cache[common.Hash, common.Address]
}

// NewTransactionAPI creates a new transaction API. A nil logger falls back to
// the root logger.
func NewTransactionAPI(b Backend, logger log.Logger) *TransactionAPI {
	if logger == nil {
		logger = log.Root()
	}
	senders, _ := lru.New[common.Hash, common.Address](senderCacheSize)
	return &TransactionAPI{b: b, logger: logger, senders: senders}
}

// DecodeRawTransaction parses a serialized transaction of any supported type
// and returns its JSON form. Signed native transactions are verified.
func (s *TransactionAPI) DecodeRawTransaction(input hexutil.Bytes) (*types.Transaction, error) {
	tx, err := types.ParseTransaction(input)
	if err != nil {
		txRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}
	txDecoded.WithLabelValues(typeLabel(tx)).Inc()
	return tx, nil
}

// SendRawTransaction will add the signed transaction to the chain. It returns
// the transaction hash for the caller to track.
func (s *TransactionAPI) SendRawTransaction(ctx context.Context, input hexutil.Bytes) (common.Hash, error) {
	tx, err := s.DecodeRawTransaction(input)
	if err != nil {
		return common.Hash{}, err
	}
	return SubmitTransaction(ctx, s.b, tx, s.logger, s.senders)
}

// Sender returns the sender of a transaction this API has accepted, if it is
// still remembered.
func (s *TransactionAPI) Sender(hash common.Hash) (common.Address, bool) {
	return s.senders.Get(hash)
}

// SubmitTransaction is a helper function that checks a transaction against the
// chain head and submits it to the backend.
func SubmitTransaction(ctx context.Context, b Backend, tx *types.Transaction, logger log.Logger, senders *lru.Cache[common.Hash, common.Address]) (common.Hash, error) {
	if err := checkTx(ctx, b, tx); err != nil {
		txRejected.WithLabelValues(rejectReason(err)).Inc()
		return common.Hash{}, err
	}
	from, err := types.Sender(types.MakeSigner(b.ChainConfig()), tx)
	if err != nil {
		txRejected.WithLabelValues(rejectReason(err)).Inc()
		return common.Hash{}, err
	}
	if err := b.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, err
	}
	hash := tx.Hash()
	if senders != nil {
		senders.Add(hash, from)
	}
	txSubmitted.WithLabelValues(typeLabel(tx)).Inc()

	fields := log.Fields{
		"hash":  hash.Hex(),
		"from":  from.Hex(),
		"nonce": tx.Nonce(),
		"type":  typeLabel(tx),
	}
	if to := tx.To(); to != nil {
		fields["recipient"] = to.Hex()
	} else {
		fields["recipient"] = "contract creation"
	}
	logger.WithFields(fields).Debug("Submitted transaction")
	return hash, nil
}

// checkTx applies the stateless intake rules: the transaction must be signed
// for this chain and, if native, must not have expired. Only unprotected
// legacy transactions may omit the chain id.
func checkTx(ctx context.Context, b Backend, tx *types.Transaction) error {
	if !tx.Signed() {
		return core.ErrUnsigned
	}
	chainID := b.ChainConfig().ChainID
	if id := tx.ChainId(); (id.Sign() != 0 || tx.IsNative()) && id.Cmp(chainID) != 0 {
		return errors.Wrapf(core.ErrInvalidChainId, "have %v, want %v", id, chainID)
	}
	if !tx.IsNative() {
		return nil
	}
	head, err := b.CurrentBlockNumber(ctx)
	if err != nil {
		return err
	}
	if tx.ValidUntil().Cmp(new(big.Int).SetUint64(head)) <= 0 {
		return errors.Wrapf(core.ErrTxExpired, "validUntil %v, head %d", tx.ValidUntil(), head)
	}
	return nil
}

// ResourceAPI converts between wallet fee fields and native resource limits.
type ResourceAPI struct {
	b Backend
}

func NewResourceAPI(b Backend) *ResourceAPI {
	return &ResourceAPI{b: b}
}

// ResourceEstimate is what a wallet needs to fund a native transaction.
type ResourceEstimate struct {
	GasPrice     *hexutil.Big `json:"gasPrice"`
	GasLimit     *hexutil.Big `json:"gasLimit"`
	UsedGas      *hexutil.Big `json:"usedGas"`
	ValidUntil   *hexutil.Big `json:"validUntil"`
	StorageLimit *hexutil.Big `json:"storageLimit"`
}

// EstimateResources packs measured gas and storage usage into a gas price and
// gas limit valid for DefaultValidityWindow blocks past the current head.
func (api *ResourceAPI) EstimateResources(ctx context.Context, usedGas, usedStorage hexutil.Uint64) (*ResourceEstimate, error) {
	head, err := api.b.CurrentBlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := api.b.FeeRates(ctx)
	if err != nil {
		return nil, err
	}
	native := fees.NativeParams{
		GasLimit:     new(big.Int).SetUint64(uint64(usedGas)),
		StorageLimit: new(big.Int).SetUint64(uint64(usedStorage)),
		ValidUntil:   new(big.Int).SetUint64(head + params.DefaultValidityWindow),
	}
	eth, err := fees.Encode(native, rates)
	if err != nil {
		return nil, err
	}
	return &ResourceEstimate{
		GasPrice:     (*hexutil.Big)(eth.GasPrice),
		GasLimit:     (*hexutil.Big)(eth.GasLimit),
		UsedGas:      (*hexutil.Big)(native.GasLimit),
		ValidUntil:   (*hexutil.Big)(native.ValidUntil),
		StorageLimit: (*hexutil.Big)(native.StorageLimit),
	}, nil
}

// DecodeFeeFields unpacks a wallet's gasPrice and gas into native limits
// using the backend's current rates.
func (api *ResourceAPI) DecodeFeeFields(ctx context.Context, args TransactionArgs) (*fees.NativeParams, error) {
	rates, err := api.b.FeeRates(ctx)
	if err != nil {
		return nil, err
	}
	native, err := args.ToNativeParams(rates)
	if err != nil {
		return nil, err
	}
	return &native, nil
}

// FilterAPI offers support to query and subscribe to event records.
type FilterAPI struct {
	b      Backend
	events *filters.EventSystem
}

// NewFilterAPI returns a new FilterAPI instance.
func NewFilterAPI(b Backend) (*FilterAPI, error) {
	events, err := filters.NewEventSystem(b)
	if err != nil {
		return nil, err
	}
	return &FilterAPI{b: b, events: events}, nil
}

// Close stops the subscription loop. Live subscriptions stop receiving.
func (api *FilterAPI) Close() {
	api.events.Close()
}

// GetLogs returns the records matching the given criteria. Pending, latest
// and unset block bounds resolve to the current head.
func (api *FilterAPI) GetLogs(ctx context.Context, crit filters.FilterCriteria) ([]*types.Log, error) {
	var (
		logs []*types.Log
		err  error
	)
	if crit.BlockHash != nil {
		logs, err = api.b.LogsByHash(ctx, *crit.BlockHash)
	} else {
		var from, to uint64
		from, to, err = api.resolveRange(ctx, crit.FromBlock, crit.ToBlock)
		if err != nil {
			return nil, err
		}
		logs, err = api.b.Logs(ctx, from, to)
	}
	if err != nil {
		return nil, err
	}
	matched := crit.Apply(logs)
	logsMatched.Add(float64(len(matched)))
	return returnLogs(matched), nil
}

// SubscribeLogs streams records matching crit into ch until the returned
// subscription is cancelled.
func (api *FilterAPI) SubscribeLogs(crit filters.FilterCriteria, ch chan []*types.Log) (*filters.Subscription, error) {
	return api.events.SubscribeLogs(crit, ch)
}

func (api *FilterAPI) resolveRange(ctx context.Context, fromBlock, toBlock *big.Int) (uint64, uint64, error) {
	head, err := api.b.CurrentBlockNumber(ctx)
	if err != nil {
		return 0, 0, err
	}
	resolve := func(n *big.Int) uint64 {
		if n == nil || n.Sign() < 0 || !n.IsUint64() {
			return head
		}
		return n.Uint64()
	}
	from, to := resolve(fromBlock), resolve(toBlock)
	if from > to {
		return 0, 0, errors.Errorf("invalid block range %d-%d", from, to)
	}
	return from, to, nil
}

// returnLogs is a helper that will return an empty log array in case the given
// logs array is nil, otherwise the given logs array is returned.
func returnLogs(logs []*types.Log) []*types.Log {
	if logs == nil {
		return []*types.Log{}
	}
	return logs
}

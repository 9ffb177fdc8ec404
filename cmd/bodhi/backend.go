package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/internal/ethapi"
	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

var errOffline = errors.New("no chain connection in offline mode")

// offlineBackend serves the gateway APIs from local configuration and a
// fixed set of event records. It never reaches a chain.
type offlineBackend struct {
	config *params.ChainConfig
	rates  fees.Rates
	head   uint64
	logs   []*types.Log

	logsFeed   event.Feed
	rmLogsFeed event.Feed
}

var _ ethapi.Backend = (*offlineBackend)(nil)

func newOfflineBackend(config *params.ChainConfig, rates fees.Rates, head uint64) *offlineBackend {
	return &offlineBackend{config: config, rates: rates, head: head}
}

// loadLogs reads a JSON array of event records. The head advances to the
// highest block seen.
func (b *offlineBackend) loadLogs(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var logs []*types.Log
	if err := json.Unmarshal(data, &logs); err != nil {
		return err
	}
	for _, l := range logs {
		if l.BlockNumber > b.head {
			b.head = l.BlockNumber
		}
	}
	b.logs = logs
	return nil
}

func (b *offlineBackend) ChainConfig() *params.ChainConfig { return b.config }

func (b *offlineBackend) CurrentBlockNumber(ctx context.Context) (uint64, error) {
	return b.head, nil
}

func (b *offlineBackend) FeeRates(ctx context.Context) (fees.Rates, error) {
	return b.rates, nil
}

func (b *offlineBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return errOffline
}

func (b *offlineBackend) Logs(ctx context.Context, from, to uint64) ([]*types.Log, error) {
	var logs []*types.Log
	for _, l := range b.logs {
		if l.BlockNumber >= from && l.BlockNumber <= to {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (b *offlineBackend) LogsByHash(ctx context.Context, blockHash common.Hash) ([]*types.Log, error) {
	var logs []*types.Log
	for _, l := range b.logs {
		if l.BlockHash == blockHash {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (b *offlineBackend) SubscribeLogsEvent(ch chan<- []*types.Log) event.Subscription {
	return b.logsFeed.Subscribe(ch)
}

func (b *offlineBackend) SubscribeRemovedLogsEvent(ch chan<- core.RemovedLogsEvent) event.Subscription {
	return b.rmLogsFeed.Subscribe(ch)
}

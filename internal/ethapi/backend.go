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

// Package ethapi implements the Ethereum-facing gateway functions on top of a
// chain backend: raw transaction intake, fee conversion and log queries.
package ethapi

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks . Backend

import (
	"context"

	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// Backend interface provides the gateway APIs with access to the chain and
// its event indexer.
type Backend interface {
	// General chain API
	ChainConfig() *params.ChainConfig
	CurrentBlockNumber(ctx context.Context) (uint64, error)
	FeeRates(ctx context.Context) (fees.Rates, error)

	// Transaction submission
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	// Event records
	Logs(ctx context.Context, from, to uint64) ([]*types.Log, error)
	LogsByHash(ctx context.Context, blockHash common.Hash) ([]*types.Log, error)
	SubscribeLogsEvent(ch chan<- []*types.Log) event.Subscription
	SubscribeRemovedLogsEvent(ch chan<- core.RemovedLogsEvent) event.Subscription
}

// Copyright 2014 The go-ethereum Authors
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

package core

import (
	"errors"

	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
)

// List of transaction intake errors. Every transaction handed to the gateway
// is pre-checked before it is forwarded to the chain; if any invalidation is
// detected, the corresponding error is returned to the submitter.
var (
	// ErrTxExpired is returned if a native transaction's validUntil is not
	// after the current block.
	ErrTxExpired = errors.New("transaction expired")

	// ErrTxTypeNotSupported is returned if the payload's discriminant byte
	// does not name a known transaction format.
	ErrTxTypeNotSupported = types.ErrUnsupportedTxType

	// ErrInvalidChainId is returned if a transaction is signed for another chain.
	ErrInvalidChainId = types.ErrInvalidChainId

	// ErrUnsigned is returned when an unsigned transaction is submitted.
	ErrUnsigned = errors.New("transaction is not signed")
)

package types

import ethtypes "github.com/ethereum/go-ethereum/core/types"

// Log is an event record emitted by a contract. Only Address and Topics take
// part in filter matching, the rest is carried through untouched.
type Log = ethtypes.Log

// AccessList is an ordered list of (address, storage keys) tuples.
type AccessList = ethtypes.AccessList

// AccessTuple is one element of an AccessList.
type AccessTuple = ethtypes.AccessTuple

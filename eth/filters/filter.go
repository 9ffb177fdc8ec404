package filters

import (
	"math/big"

	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/ethereum/go-ethereum/common"
)

// MatchAddress reports whether addr is one of addresses. An empty set
// matches any address.
func MatchAddress(addr common.Address, addresses []common.Address) bool {
	if len(addresses) == 0 {
		return true
	}
	for _, a := range addresses {
		if a == addr {
			return true
		}
	}
	return false
}

// MatchTopics checks topics position by position against filter. An empty
// group at a position is a wildcard, even when the record has no topic
// there. A non-empty group requires the record's topic at that position to be
// one of its members.
func MatchTopics(topics []common.Hash, filter [][]common.Hash) bool {
	for i, group := range filter {
		if len(group) == 0 {
			continue
		}
		if i >= len(topics) {
			return false
		}
		found := false
		for _, topic := range group {
			if topics[i] == topic {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Match reports whether log satisfies the address and topic constraints of
// crit. Block constraints are not considered.
func Match(log *types.Log, crit FilterCriteria) bool {
	return MatchAddress(log.Address, crit.Addresses) && MatchTopics(log.Topics, crit.Topics)
}

// FilterLogs creates a slice of logs matching the given criteria. Negative
// block bounds are symbolic tags and impose no constraint.
func FilterLogs(logs []*types.Log, fromBlock, toBlock *big.Int, addresses []common.Address, topics [][]common.Hash) []*types.Log {
	var ret []*types.Log
	for _, log := range logs {
		if fromBlock != nil && fromBlock.Sign() >= 0 && fromBlock.Cmp(new(big.Int).SetUint64(log.BlockNumber)) > 0 {
			continue
		}
		if toBlock != nil && toBlock.Sign() >= 0 && toBlock.Cmp(new(big.Int).SetUint64(log.BlockNumber)) < 0 {
			continue
		}
		if !MatchAddress(log.Address, addresses) || !MatchTopics(log.Topics, topics) {
			continue
		}
		ret = append(ret, log)
	}
	return ret
}

// Apply filters logs with every constraint in crit. A block hash, when set,
// replaces the block range.
func (crit FilterCriteria) Apply(logs []*types.Log) []*types.Log {
	if crit.BlockHash == nil {
		return FilterLogs(logs, crit.FromBlock, crit.ToBlock, crit.Addresses, crit.Topics)
	}
	var ret []*types.Log
	for _, log := range logs {
		if log.BlockHash == *crit.BlockHash && Match(log, crit) {
			ret = append(ret, log)
		}
	}
	return ret
}

package ethapi

import (
	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/metrics_config"
	"github.com/pkg/errors"
)

var (
	txDecoded   = metrics_config.NewCounterVec("txs_decoded", "Raw transactions decoded by type", "type")
	txSubmitted = metrics_config.NewCounterVec("txs_submitted", "Transactions forwarded to the chain by type", "type")
	txRejected  = metrics_config.NewCounterVec("txs_rejected", "Transactions refused at intake by reason", "reason")
	logsMatched = metrics_config.NewCounter("logs_matched", "Event records returned by log queries")
)

func typeLabel(tx *types.Transaction) string {
	switch tx.Type() {
	case types.NativeTxType:
		return "native"
	case types.LegacyTxType:
		return "legacy"
	case types.AccessListTxType:
		return "accesslist"
	case types.DynamicFeeTxType:
		return "dynamicfee"
	default:
		return "unknown"
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, types.ErrUnsupportedTxType):
		return "unsupported_type"
	case errors.Is(err, types.ErrInvalidEnvelope):
		return "invalid_envelope"
	case errors.Is(err, types.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, types.ErrNumericOverflow):
		return "numeric_overflow"
	case errors.Is(err, types.ErrInvalidChainId):
		return "chain_id"
	case errors.Is(err, core.ErrTxExpired):
		return "expired"
	case errors.Is(err, core.ErrUnsigned):
		return "unsigned"
	case errors.Is(err, fees.ErrInvalidFeeParameters):
		return "fee_parameters"
	default:
		return "other"
	}
}

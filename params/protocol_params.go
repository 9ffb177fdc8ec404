package params

import "math/big"

const (
	// StorageEntrySize is the number of bytes of new storage accounted as one
	// storage entry when fee parameters are packed into a gas price.
	StorageEntrySize uint64 = 64

	// BlockPeriodLength is the number of blocks in one validity period.
	BlockPeriodLength uint64 = 30

	// StorageEntryBits is the width of the storage entry counter carried in
	// the low bits of a packed gas price.
	StorageEntryBits uint = 16

	// DefaultValidityWindow is how many blocks past the current head an
	// estimated transaction stays valid.
	DefaultValidityWindow uint64 = 100

	// DomainName and DomainVersion identify the typed-data domain
	// native transactions are signed under.
	DomainName    = "Acala EVM"
	DomainVersion = "1"
)

var (
	// DefaultTxFeePerGas is the execution fee per gas unit on the public
	// networks. It is a multiple of 1<<StorageEntryBits so the low bits of a
	// packed gas price stay free for the storage entry counter.
	DefaultTxFeePerGas = big.NewInt(199999946752)

	// DefaultStorageByteDeposit is the deposit reserved per byte of new storage.
	DefaultStorageByteDeposit = big.NewInt(100000000000000)
)

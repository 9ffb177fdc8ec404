package main

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AcalaNetwork/bodhi.js-sub002/cmd/utils"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/internal/ethapi"
)

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "converts between native resource limits and Ethereum fee fields",
}

var feesEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "packs gas, storage and validity into gasPrice and gasLimit",
	Long: `packs native resource limits into the gasPrice and gasLimit a wallet signs.
When --valid-until is not given the transaction stays valid for a fixed
window past --head.`,
	Args:    cobra.NoArgs,
	RunE:    runFeesEncode,
	Example: `bodhi fees encode --gas-limit 2100001 --storage-limit 64001 --valid-until 3601`,
}

var feesDecodeCmd = &cobra.Command{
	Use:     "decode",
	Short:   "unpacks gasPrice and gasLimit into native resource limits",
	Args:    cobra.NoArgs,
	RunE:    runFeesDecode,
	Example: `bodhi fees decode --gas-price 200007877609 --gas 34132001`,
}

var (
	encodeGasLimit     uint64
	encodeStorageLimit uint64
	encodeValidUntil   = new(utils.BigIntValue)
	encodeHead         uint64

	decodeGasPrice = new(utils.BigIntValue)
	decodeGas      = new(utils.BigIntValue)
)

// feeResult shows both sides of the conversion as decimal strings.
type feeResult struct {
	GasPrice     string `json:"gasPrice"`
	GasLimit     string `json:"gasLimit"`
	Fee          string `json:"fee"`
	NativeGas    string `json:"nativeGasLimit"`
	StorageLimit string `json:"storageLimit"`
	ValidUntil   string `json:"validUntil"`
}

func newFeeResult(eth fees.EthParams, native fees.NativeParams) feeResult {
	return feeResult{
		GasPrice:     eth.GasPrice.String(),
		GasLimit:     eth.GasLimit.String(),
		Fee:          eth.Fee().String(),
		NativeGas:    native.GasLimit.String(),
		StorageLimit: native.StorageLimit.String(),
		ValidUntil:   native.ValidUntil.String(),
	}
}

func init() {
	rootCmd.AddCommand(feesCmd)
	feesCmd.AddCommand(feesEncodeCmd, feesDecodeCmd)

	feesEncodeCmd.Flags().Uint64Var(&encodeGasLimit, "gas-limit", 0, "native gas limit")
	feesEncodeCmd.Flags().Uint64Var(&encodeStorageLimit, "storage-limit", 0, "storage limit in bytes")
	feesEncodeCmd.Flags().Var(encodeValidUntil, "valid-until", "last block number the transaction is valid for")
	feesEncodeCmd.Flags().Uint64Var(&encodeHead, "head", 0, "current block number, used when --valid-until is not set")

	feesDecodeCmd.Flags().Var(decodeGasPrice, "gas-price", "packed gasPrice")
	feesDecodeCmd.Flags().Var(decodeGas, "gas", "packed gasLimit")
	feesDecodeCmd.MarkFlagRequired("gas-price")
	feesDecodeCmd.MarkFlagRequired("gas")
}

func runFeesEncode(cmd *cobra.Command, args []string) error {
	b, err := newBackendFromViper(encodeHead)
	if err != nil {
		return err
	}
	var (
		eth    fees.EthParams
		native fees.NativeParams
	)
	if cmd.Flags().Changed("valid-until") {
		native = fees.NativeParams{
			GasLimit:     new(big.Int).SetUint64(encodeGasLimit),
			StorageLimit: new(big.Int).SetUint64(encodeStorageLimit),
			ValidUntil:   new(big.Int).Set((*big.Int)(encodeValidUntil)),
		}
		if eth, err = fees.Encode(native, b.rates); err != nil {
			return err
		}
	} else {
		est, err := ethapi.NewResourceAPI(b).EstimateResources(cmd.Context(), hexutil.Uint64(encodeGasLimit), hexutil.Uint64(encodeStorageLimit))
		if err != nil {
			return err
		}
		eth = fees.EthParams{GasPrice: est.GasPrice.ToInt(), GasLimit: est.GasLimit.ToInt()}
		native = fees.NativeParams{
			GasLimit:     est.UsedGas.ToInt(),
			StorageLimit: est.StorageLimit.ToInt(),
			ValidUntil:   est.ValidUntil.ToInt(),
		}
	}
	return printResult(cmd.OutOrStdout(), viper.GetString(utils.OutputFlag.Name), newFeeResult(eth, native))
}

func runFeesDecode(cmd *cobra.Command, args []string) error {
	b, err := newBackendFromViper(0)
	if err != nil {
		return err
	}
	gasPrice, gas := (*big.Int)(decodeGasPrice), (*big.Int)(decodeGas)
	native, err := ethapi.NewResourceAPI(b).DecodeFeeFields(cmd.Context(), ethapi.TransactionArgs{
		GasPrice: (*hexutil.Big)(gasPrice),
		Gas:      (*hexutil.Big)(gas),
	})
	if err != nil {
		return err
	}
	eth := fees.EthParams{GasPrice: gasPrice, GasLimit: gas}
	return printResult(cmd.OutOrStdout(), viper.GetString(utils.OutputFlag.Name), newFeeResult(eth, *native))
}

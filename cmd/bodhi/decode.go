package main

import (
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AcalaNetwork/bodhi.js-sub002/cmd/utils"
	"github.com/AcalaNetwork/bodhi.js-sub002/internal/ethapi"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [raw-tx]",
	Short: "decodes a serialized transaction",
	Long: `decodes a 0x-prefixed serialized transaction of any supported type and prints it.
Signed native transactions are verified and their sender is shown.
The payload is read from standard input when no argument is given.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runDecode,
	Example: `bodhi decode 0x60f8... --output json`,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	raw, err := readHexArg(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	b, err := newBackendFromViper(0)
	if err != nil {
		return err
	}
	api := ethapi.NewTransactionAPI(b, log.Root())
	tx, err := api.DecodeRawTransaction(raw)
	if err != nil {
		return err
	}
	log.Global.WithField("hash", tx.Hash().Hex()).Debug("Decoded transaction")
	return printResult(cmd.OutOrStdout(), viper.GetString(utils.OutputFlag.Name), tx)
}

// readHexArg decodes the first argument, or standard input when there is
// none.
func readHexArg(stdin io.Reader, args []string) (hexutil.Bytes, error) {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		input = string(data)
	}
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "0x") && !strings.HasPrefix(input, "0X") {
		input = "0x" + input
	}
	return hexutil.Decode(input)
}

func newBackendFromViper(head uint64) (*offlineBackend, error) {
	config, err := utils.ChainConfigFromViper()
	if err != nil {
		return nil, err
	}
	rates, err := utils.FeeRatesFromViper()
	if err != nil {
		return nil, err
	}
	return newOfflineBackend(config, rates, head), nil
}

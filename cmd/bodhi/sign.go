package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AcalaNetwork/bodhi.js-sub002/cmd/utils"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/internal/ethapi"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
)

const keyFlagName = "key"

var signCmd = &cobra.Command{
	Use:   "sign [args.json]",
	Short: "builds and signs a native transaction",
	Long: `builds a native transaction from wallet-style arguments and signs its typed-data hash.
The arguments file holds the JSON object a wallet would pass to eth_sendTransaction;
gas and gasPrice are unpacked into native limits with the configured fee rates.
The arguments are read from standard input when no file is given.
The private key is taken from --key or the BODHI_KEY environment variable.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSign,
	Example: `bodhi sign tx.json --chain mandala --key 0x...`,
}

type signResult struct {
	Raw         hexutil.Bytes      `json:"raw"`
	Transaction *types.Transaction `json:"tx"`
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().String(keyFlagName, "", "hex encoded secp256k1 private key [BODHI_KEY]")
	viper.BindPFlag(keyFlagName, signCmd.Flags().Lookup(keyFlagName))
}

func runSign(cmd *cobra.Command, args []string) error {
	keyHex := strings.TrimPrefix(viper.GetString(keyFlagName), "0x")
	if keyHex == "" {
		return errors.New("a private key is required")
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return errors.Wrap(err, "invalid private key")
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var txArgs ethapi.TransactionArgs
	if err := json.NewDecoder(in).Decode(&txArgs); err != nil {
		return errors.Wrap(err, "invalid transaction arguments")
	}

	b, err := newBackendFromViper(0)
	if err != nil {
		return err
	}
	unsigned, err := txArgs.ToTransaction(cmd.Context(), b)
	if err != nil {
		return err
	}
	signer := types.MakeSigner(b.ChainConfig())
	tx, err := types.SignTx(unsigned, signer, key)
	if err != nil {
		return err
	}
	from, err := types.Sender(signer, tx)
	if err != nil {
		return err
	}
	if txArgs.From != nil && *txArgs.From != from {
		return errors.Errorf("key does not belong to %s", txArgs.From.Hex())
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return err
	}
	log.Global.WithFields(log.Fields{
		"hash": tx.Hash().Hex(),
		"from": from.Hex(),
	}).Info("Signed transaction")
	return printResult(cmd.OutOrStdout(), viper.GetString(utils.OutputFlag.Name), signResult{Raw: raw, Transaction: tx})
}

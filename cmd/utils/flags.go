package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/AcalaNetwork/bodhi.js-sub002/common/constants"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var GlobalFlags = []Flag{
	ConfigDirFlag,
	LogLevelFlag,
	SaveConfigFlag,
	OutputFlag,
	MetricsEnabledFlag,
	MetricsPortFlag,
}

var ChainFlags = []Flag{
	ChainFlag,
	ChainIDFlag,
	TxFeePerGasFlag,
	StorageByteDepositFlag,
}

// Flags is every flag group that ends up in the default config file.
var Flags = [][]Flag{
	GlobalFlags,
	ChainFlags,
}

var (
	// ****************************************
	// **                                    **
	// **         CHAIN FLAGS                **
	// **                                    **
	// ****************************************
	ChainFlag = Flag{
		Name:  "chain",
		Value: params.LocalChainConfig.Name,
		Usage: "network whose chain id and domain apply (acala, karura, mandala, local)" + generateEnvDoc("chain"),
	}

	ChainIDFlag = Flag{
		Name:  "chain-id",
		Value: uint64(0),
		Usage: "override the chain id of the selected network (0 keeps the network default)" + generateEnvDoc("chain-id"),
	}

	TxFeePerGasFlag = Flag{
		Name:  "tx-fee-per-gas",
		Value: newBigIntValue(params.DefaultTxFeePerGas),
		Usage: "base fee rate packed into the low bits of gasPrice" + generateEnvDoc("tx-fee-per-gas"),
	}

	StorageByteDepositFlag = Flag{
		Name:  "storage-byte-deposit",
		Value: newBigIntValue(params.DefaultStorageByteDeposit),
		Usage: "deposit charged per byte of storage" + generateEnvDoc("storage-byte-deposit"),
	}

	// ****************************************
	// **                                    **
	// **         GLOBAL FLAGS               **
	// **                                    **
	// ****************************************
	ConfigDirFlag = Flag{
		Name:         "config-dir",
		Abbreviation: "c",
		Value:        xdg.ConfigHome + "/" + constants.APP_NAME + "/",
		Usage:        "config directory" + generateEnvDoc("config-dir"),
	}

	LogLevelFlag = Flag{
		Name:         "log-level",
		Abbreviation: "l",
		Value:        "warn",
		Usage:        "log level (trace, debug, info, warn, error, fatal, panic)" + generateEnvDoc("log-level"),
	}

	SaveConfigFlag = Flag{
		Name:         "save-config",
		Abbreviation: "S",
		Value:        false,
		Usage:        "save/update config file with current config parameters" + generateEnvDoc("save-config"),
	}

	OutputFlag = Flag{
		Name:         "output",
		Abbreviation: "o",
		Value:        "table",
		Usage:        "output format (table, json, yaml)" + generateEnvDoc("output"),
	}

	MetricsEnabledFlag = Flag{
		Name:  "metrics",
		Value: false,
		Usage: "serve prometheus metrics while the command runs" + generateEnvDoc("metrics"),
	}

	MetricsPortFlag = Flag{
		Name:  "metrics-port",
		Value: 9100,
		Usage: "port the metrics endpoint listens on" + generateEnvDoc("metrics-port"),
	}
)

func CreateAndBindFlag(flag Flag, cmd *cobra.Command) {
	switch val := flag.Value.(type) {
	case string:
		cmd.PersistentFlags().StringP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case bool:
		cmd.PersistentFlags().BoolP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case []string:
		cmd.PersistentFlags().StringSliceP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case time.Duration:
		cmd.PersistentFlags().DurationP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case int:
		cmd.PersistentFlags().IntP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case int64:
		cmd.PersistentFlags().Int64P(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case uint64:
		cmd.PersistentFlags().Uint64P(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case *BigIntValue:
		// Parse into a copy so the default stays intact.
		cmd.PersistentFlags().VarP(val.copy(), flag.GetName(), flag.GetAbbreviation(), flag.GetUsage())
	default:
		log.Error("Flag type not supported: " + flag.GetName() + ", " + fmt.Sprintf("%T", val))
	}
	viper.BindPFlag(flag.GetName(), cmd.PersistentFlags().Lookup(flag.GetName()))
}

// helper function that given a cobra flag name, returns the corresponding
// help legend for the equivalent environment variable
func generateEnvDoc(flag string) string {
	envVar := constants.ENV_PREFIX + "_" + strings.ReplaceAll(strings.ToUpper(flag), "-", "_")
	return fmt.Sprintf(" [%s]", envVar)
}

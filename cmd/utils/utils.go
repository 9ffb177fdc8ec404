package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/AcalaNetwork/bodhi.js-sub002/common/constants"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// InitConfig initializes the viper config instance ensuring that environment variables
// take precedence over config file parameters.
// Environment variables should be prefixed with the application name (e.g. BODHI_LOG_LEVEL).
// It panics if an error occurs while reading the config file.
func InitConfig() {
	// read in config file and merge with defaults
	log.Global.Infof("Loading config from file: %s", viper.ConfigFileUsed())
	err := viper.ReadInConfig()
	if err != nil {
		// if error is type ConfigFileNotFoundError or fs.PathError, ignore error
		if _, ok := err.(*fs.PathError); ok || errors.Is(err, viper.ConfigFileNotFoundError{}) {
			log.Global.Warnf("Config file not found: %s", viper.ConfigFileUsed())
		} else {
			log.Global.Errorf("Error reading config file: %s", err)
			// config file was found but another error was produced. Cannot continue
			panic(err)
		}
	}

	log.Global.Infof("Loading config from environment variables with prefix: '%s_'", constants.ENV_PREFIX)
	viper.SetEnvPrefix(constants.ENV_PREFIX)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// SaveConfig saves the config file with the current config parameters.
//
// If the config file does not exist, it creates it.
//
// If the config file exists, it creates a backup copy ending with .bak
// and overwrites the existing config file.
func SaveConfig() error {
	configFile := viper.ConfigFileUsed()
	log.Global.Debugf("saving/updating config file: %s", configFile)
	if _, err := os.Stat(configFile); err == nil {
		// config file exists, create backup copy
		if err := os.Rename(configFile, configFile+".bak"); err != nil {
			return err
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
			return err
		}
	} else {
		return err
	}
	return viper.WriteConfigAs(configFile)
}

// WriteDefaultConfigFile writes every known flag with its current value to
// configDir/fileName. Only toml is supported.
func WriteDefaultConfigFile(configDir string, fileName string, fileType string) error {
	if fileType != "toml" {
		return fmt.Errorf("unsupported config file type: %s", fileType)
	}
	settings := make(map[string]interface{})
	for _, group := range Flags {
		for _, flag := range group {
			if flag.Name == ConfigDirFlag.Name || flag.Name == SaveConfigFlag.Name {
				continue
			}
			settings[flag.Name] = configValue(flag)
		}
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, fileName), data, 0644)
}

// configValue returns the effective value of flag, preferring anything viper
// has loaded over the flag default.
func configValue(flag Flag) interface{} {
	if viper.IsSet(flag.Name) {
		if _, ok := flag.Value.(*BigIntValue); ok {
			return viper.GetString(flag.Name)
		}
		return viper.Get(flag.Name)
	}
	if b, ok := flag.Value.(*BigIntValue); ok {
		return b.String()
	}
	return flag.Value
}

// ChainConfigFromViper resolves the network selected by the chain flags.
func ChainConfigFromViper() (*params.ChainConfig, error) {
	config, err := params.ChainConfigByName(viper.GetString(ChainFlag.Name))
	if err != nil {
		return nil, err
	}
	if id := viper.GetUint64(ChainIDFlag.Name); id != 0 {
		config = config.WithChainID(new(big.Int).SetUint64(id))
	}
	return config, nil
}

// FeeRatesFromViper reads the fee rates used to pack and unpack gas fields.
func FeeRatesFromViper() (fees.Rates, error) {
	txFeePerGas, err := bigFromViper(TxFeePerGasFlag)
	if err != nil {
		return fees.Rates{}, err
	}
	storageByteDeposit, err := bigFromViper(StorageByteDepositFlag)
	if err != nil {
		return fees.Rates{}, err
	}
	rates := fees.Rates{TxFeePerGas: txFeePerGas, StorageByteDeposit: storageByteDeposit}
	if err := rates.Validate(); err != nil {
		return fees.Rates{}, err
	}
	return rates, nil
}

func bigFromViper(flag Flag) (*big.Int, error) {
	raw := viper.GetString(flag.Name)
	if raw == "" {
		if def, ok := flag.Value.(*BigIntValue); ok {
			return new(big.Int).Set((*big.Int)(def)), nil
		}
		return nil, fmt.Errorf("%s is not set", flag.Name)
	}
	v, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %q", flag.Name, raw)
	}
	return v, nil
}

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AcalaNetwork/bodhi.js-sub002/cmd/utils"
	"github.com/AcalaNetwork/bodhi.js-sub002/common/constants"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/pkg/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "creates the default config file",
	Long: `creates the default config file in the location specified by the --config-dir flag.
The default config file will contain all the default values for the flags.
Any flags passed in the command line here will also overwrite the default values in the config file.`,
	RunE:                       runConfig,
	SilenceUsage:               true,
	SuggestionsMinimumDistance: 2,
	Example:                    `bodhi config --chain acala --log-level=debug`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	// set config path to read config file
	configDir := filepath.Clean(cmd.Flag(utils.ConfigDirFlag.Name).Value.String())

	_, err := os.Stat(configDir)
	if err != nil && os.IsNotExist(err) {
		// If the directory does not exist, create it
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create config directory %s", configDir)
		}
		log.Global.Debugf("Config directory created: %s", configDir)
	} else if err != nil {
		return errors.Wrapf(err, "error accessing config directory %s", configDir)
	}

	path := filepath.Join(configDir, constants.CONFIG_FILE_NAME)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.Errorf("cannot init config file %s: file already exists", path)
	}
	if err := utils.WriteDefaultConfigFile(configDir, constants.CONFIG_FILE_NAME, constants.CONFIG_FILE_TYPE); err != nil {
		return err
	}
	log.Global.WithField("path", path).Info("Initialized new config file.")
	return nil
}

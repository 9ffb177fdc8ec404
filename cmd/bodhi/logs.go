package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AcalaNetwork/bodhi.js-sub002/cmd/utils"
	"github.com/AcalaNetwork/bodhi.js-sub002/eth/filters"
	"github.com/AcalaNetwork/bodhi.js-sub002/internal/ethapi"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "evaluates log filters",
}

var logsMatchCmd = &cobra.Command{
	Use:   "match <logs.json> <filter.json>",
	Short: "prints the records a filter selects",
	Long: `reads a JSON array of event records, as returned by eth_getLogs, and a filter
object, as accepted by eth_getLogs, and prints the records the filter selects.
Block tags such as "latest" resolve to the highest block in the record file.`,
	Args:    cobra.ExactArgs(2),
	RunE:    runLogsMatch,
	Example: `bodhi logs match logs.json '{"address": "0x...", "topics": [null, "0x..."]}'`,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsMatchCmd)
}

func runLogsMatch(cmd *cobra.Command, args []string) error {
	b, err := newBackendFromViper(0)
	if err != nil {
		return err
	}
	if err := b.loadLogs(args[0]); err != nil {
		return errors.Wrap(err, "invalid log records")
	}
	crit, err := readCriteria(args[1])
	if err != nil {
		return err
	}

	api, err := ethapi.NewFilterAPI(b)
	if err != nil {
		return err
	}
	defer api.Close()
	logs, err := api.GetLogs(cmd.Context(), crit)
	if err != nil {
		return err
	}
	log.Global.WithFields(log.Fields{
		"records": len(b.logs),
		"matched": len(logs),
	}).Debug("Applied log filter")
	return printResult(cmd.OutOrStdout(), viper.GetString(utils.OutputFlag.Name), logs)
}

// readCriteria accepts either inline JSON or the path of a JSON file.
func readCriteria(arg string) (filters.FilterCriteria, error) {
	data := []byte(arg)
	if len(arg) > 0 && arg[0] != '{' {
		var err error
		if data, err = os.ReadFile(arg); err != nil {
			return filters.FilterCriteria{}, err
		}
	}
	var crit filters.FilterCriteria
	if err := json.Unmarshal(data, &crit); err != nil {
		return filters.FilterCriteria{}, errors.Wrap(err, "invalid filter")
	}
	return crit, nil
}

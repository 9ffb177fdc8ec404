package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// printResult writes v in the requested format. Values are rendered through
// their JSON form so every format shows the same field names.
func printResult(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		var node interface{}
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		out, err := yaml.Marshal(node)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "table", "":
		return printTable(w, data)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// printTable renders an object as field/value rows and an array of objects
// as one row per element. Fields keep their JSON order.
func printTable(w io.Writer, data []byte) error {
	var rows []*orderedmap.OrderedMap[string, interface{}]
	if err := json.Unmarshal(data, &rows); err != nil {
		row := orderedmap.New[string, interface{}]()
		if err := json.Unmarshal(data, row); err != nil {
			return err
		}
		return printFields(w, row)
	}

	table := tablewriter.NewWriter(w)
	var header []string
	if len(rows) > 0 {
		for pair := rows[0].Oldest(); pair != nil; pair = pair.Next() {
			header = append(header, pair.Key)
		}
	}
	table.SetHeader(header)
	for _, row := range rows {
		line := make([]string, len(header))
		for i, k := range header {
			v, _ := row.Get(k)
			line[i] = cell(v)
		}
		table.Append(line)
	}
	table.Render()
	return nil
}

func printFields(w io.Writer, row *orderedmap.OrderedMap[string, interface{}]) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	for pair := row.Oldest(); pair != nil; pair = pair.Next() {
		table.Append([]string{pair.Key, cell(pair.Value)})
	}
	table.Render()
	return nil
}

func cell(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, _ := json.Marshal(v)
		return string(data)
	}
}

// bodhi is the command-line companion for the Ethereum compatibility layer:
// it decodes and signs native transactions, converts fee fields and
// evaluates log filters offline.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

// ABOUTME: Entry point for the sales CRM
// ABOUTME: Hands the command line to the cobra command tree
package main

import (
	"os"

	"github.com/harperreed/salescrm/cli"
)

const version = "0.2.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}

// main is the entry point for the speedreport CLI.
package main

import (
	"github.com/huangsam/speedreport/cmd"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/recordstore"
)

func main() {
	err := cmd.Execute()
	recordstore.CloseStore()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	contract.SyncLogger()
}

package main

import "gitlab.com/tierpass-exchange/ledger_api/cmd"

func main() {
	cmd.Execute()
}

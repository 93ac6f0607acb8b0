package main

import (
	"fmt"
	"os"

	"fjacquet/daily-dollar/cmd/category"
	"fjacquet/daily-dollar/cmd/csvexport"
	"fjacquet/daily-dollar/cmd/csvimport"
	"fjacquet/daily-dollar/cmd/expected"
	"fjacquet/daily-dollar/cmd/forecast"
	"fjacquet/daily-dollar/cmd/history"
	"fjacquet/daily-dollar/cmd/override"
	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/cmd/savings"
	"fjacquet/daily-dollar/cmd/setup"
	"fjacquet/daily-dollar/cmd/status"
	"fjacquet/daily-dollar/cmd/transaction"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(status.Cmd)
	root.Cmd.AddCommand(forecast.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(savings.Cmd)
	root.Cmd.AddCommand(csvimport.Cmd)
	root.Cmd.AddCommand(csvexport.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(transaction.Cmd)
	root.Cmd.AddCommand(expected.Cmd)
	root.Cmd.AddCommand(override.Cmd)
	root.Cmd.AddCommand(setup.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

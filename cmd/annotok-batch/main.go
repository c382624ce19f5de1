package main

import (
	"os"

	"github.com/revelaction/annotok/command"
)

func main() {
	ui := command.UI{Out: os.Stdout, Err: os.Stderr}
	os.Exit(command.Main(command.NewBatchApp(ui), os.Args, ui))
}

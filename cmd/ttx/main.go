package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ColeTrammer/ttx/logging"
	"github.com/ColeTrammer/ttx/supervisor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ttx: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("ttx", flag.ContinueOnError)
	logPath := fs.String("log", logging.DefaultPath(), "path to write diagnostic logs")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: ttx COMMAND...\n\n"+
			"Runs the required COMMAND in a pane-splittable terminal multiplexer.\n"+
			"Prefix key is Ctrl+A: arrows move focus, Ctrl+arrows split, Shift+arrows\n"+
			"swap, x closes the focused pane, r enters resize mode (Escape/Enter exits).\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	command := fs.Args()
	if len(command) == 0 {
		fs.Usage()
		return fmt.Errorf("COMMAND is required")
	}

	logFile, err := logging.Setup(*logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	sv := supervisor.New(command)
	if err := sv.Start(); err != nil {
		return err
	}
	return sv.Run()
}

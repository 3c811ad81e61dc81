package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitInputFormat  = 3
	ExitTaskFailures = 4
	ExitCancelled    = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "names":
		return runNames(cmdArgs)
	case "table":
		return runTable(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: sdsschart <command> [options] <input-file>

Commands:
  names     Fetch finding charts for a list of object names (one per line),
            resolving coordinates via Simbad
  table     Fetch finding charts for a delimited coordinate table with
            ra/dec columns

Use '-' as the input file to read from stdin.
Run 'sdsschart <command> -h' for command-specific help.`)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zerocost/zerocost-etl/commands"
)

var cli = []commands.Command{
	&commands.SyncCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Env:   "",
	Debug: false,
}

func main() {
	flag.StringVar(&options.Env, "env", options.Env, "Optional .env file with the job configuration")
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	args := flag.Args()

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if args[0] == "help" {
		help(args[1:])
		return
	}

	for _, cmd := range cli {
		if cmd.Name() == args[0] {
			if err := cmd.FlagSet().Parse(args[1:]); err != nil {
				fmt.Printf("\nError parsing command line: %v\n\n", err)
				os.Exit(1)
			}

			if err := cmd.Execute(&options); err != nil {
				log.Fatalf("ERROR: %v", err)
			}

			return
		}
	}

	fmt.Printf("\nInvalid command '%s'\n\n", args[0])
	usage()
	os.Exit(1)
}

func usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--env <file>] <command> [options]\n", commands.APP)
	fmt.Println()
	fmt.Println("  Commands:")

	for _, cmd := range cli {
		fmt.Printf("    %-9s %s\n", cmd.Name(), cmd.Description())
	}

	fmt.Println()
}

func help(args []string) {
	if len(args) > 0 {
		for _, cmd := range cli {
			if cmd.Name() == args[0] {
				cmd.Help()
				return
			}
		}

		fmt.Printf("\nInvalid command '%s'\n", args[0])
	}

	usage()
}

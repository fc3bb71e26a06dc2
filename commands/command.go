package commands

import (
	"flag"
	"fmt"
	"log"
)

const APP = "zerocost-etl"
const VERSION = "v0.1.0"

// Options are the application-wide command line options, shared by all commands.
type Options struct {
	Env   string
	Debug bool
}

// Command is the interface implemented by the CLI commands.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(args ...interface{}) error
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-9s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...interface{}) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "ERROR", fmt.Sprintf(format, args...))
}

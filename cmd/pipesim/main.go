// Package main provides the entry point for pipesim, a cycle-accurate
// simulator for a configurable in-order pipelined processor.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sarchlab/pipesim"
	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/sim"
)

var (
	procPath    = flag.String("proc", "", "Path to the processor microarchitecture file")
	isaPath     = flag.String("isa", "", "Path to the ISA mapping file")
	programPath = flag.String("program", "", "Path to the program file")
	verbose     = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if *procPath == "" || *isaPath == "" || *programPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: pipesim -proc <file> -isa <file> -program <file>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	procTree, err := readTree(*procPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading processor file: %v\n", err)
		os.Exit(1)
	}

	isaTree, err := readTree(*isaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ISA file: %v\n", err)
		os.Exit(1)
	}
	procTree["ISA"] = isaTree["ISA"]

	programTree, err := readTree(*programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program file: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded processor: %s, ISA: %s, program: %s\n", *procPath, *isaPath, *programPath)
	}

	table, err := pipesim.Run(procTree, programTree, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printTable(table)
}

func readTree(path string) (config.Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return config.Parse(raw)
}

func printTable(table sim.UtilTable) {
	for cycle, util := range table {
		units := util.Keys()
		sort.Strings(units)

		fmt.Printf("cycle %d:\n", cycle)
		for _, unit := range units {
			fmt.Printf("  %s: %v\n", unit, util.Get(unit))
		}
	}
}

// Package main provides the synthload workload generator.
//
// synthload holds a byte buffer in memory and resizes or fills it on
// command, so an external memory scanner has a process with known
// content to scan. It reads one command per line on stdin:
//
//	set-memory-size <n>    resize the buffer
//	fill <byte>            fill with a fixed byte
//	fill-random <seed>     fill deterministically from a seed
//	set-address <a> <byte> write one byte at a reported address
//	info                   print buffer size and address range
//	exit | q               quit
//
// Numeric arguments accept decimal or 0x-prefixed hex. Successful
// commands are acknowledged with a Done line.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/randomizedcoder/go-scanmem-bench/internal/synthload"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("synthload %s\n", version)
			os.Exit(0)
		}
	}

	// Only prompt a human; piped protocol traffic stays clean.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	it := synthload.NewInterpreter(os.Stdin, os.Stdout, synthload.Options{
		Prompt: interactive,
	})
	if err := it.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "synthload: %v\n", err)
		os.Exit(1)
	}
}

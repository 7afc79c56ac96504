// Command golfrom round-trips NES golf cartridge course data between a
// ROM image and a directory of per-hole JSON files: dumping a ROM's
// courses out, writing or packing edited courses back in, inspecting the
// cartridge's compression tables, rebuilding NeighborStats from a corpus,
// and running the WFC forest filler against a single hole.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

var subcommands = map[string]func([]string) error{
	"dump":              runDump,
	"write":             runWrite,
	"pack":              runPack,
	"extract-tables":    runExtractTables,
	"analyze-neighbors": runAnalyzeNeighbors,
	"fill":              runFill,
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: golfrom <command> [args]")
	fmt.Fprintln(os.Stderr, "commands: dump, write, pack, extract-tables, analyze-neighbors, fill")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, ok := subcommands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "golfrom: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err := cmd(os.Args[2:]); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// newLogger returns a text-handler slog.Logger at Info level, or Debug
// level under --verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

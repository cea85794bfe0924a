// Command glob extracts all matches of a glob pattern from a text file,
// printing each occurrence's byte offset, length, and matched text.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spongedata/goextractor/extractor"
	"github.com/spongedata/goextractor/miner"
	"github.com/spongedata/goextractor/stream"
)

const usage = `Glob miner example use
  glob <glob> <file>

where:
  glob - pattern in format (SYMBOL|*|?|[SYMBOL1SYMBOL2]|[SYMBOL1-SYMBOL2])+
    SYMBOL          - a unicode symbol
    *               - Kleene closure
    ?               - any single char
    [SYMBOL1..SYMBOLN] - a set containing SYMBOL1 to SYMBOLN
    [SYMBOL1-SYMBOLN]  - a set of symbols from SYMBOL1 to SYMBOLN, by codepoint order
  file - path to a unicode textual file
`

const batchSize = 1_000_000

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "glob pattern and file path not specified")
		flag.Usage()
		os.Exit(1)
	}
	glob, filename := flag.Arg(0), flag.Arg(1)

	if err := run(glob, filename); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(glob, filename string) error {
	gm, err := miner.NewGlob(glob)
	if err != nil {
		return fmt.Errorf("building glob miner: %w", err)
	}

	e := extractor.NewExtractor(extractor.DefaultConfig())
	defer e.Destroy()

	if err := e.AddMiner(gm); err != nil {
		return fmt.Errorf("adding miner: %w", err)
	}

	f, err := stream.OpenFile(filename)
	if err != nil {
		return fmt.Errorf("opening %q: %w", filename, err)
	}
	defer f.Close()

	if err := e.SetStream(f); err != nil {
		return fmt.Errorf("setting stream: %w", err)
	}

	for !f.AtEOF() {
		out, err := e.Next(batchSize)
		if err != nil {
			return fmt.Errorf("next: %w", err)
		}
		for _, o := range out {
			fmt.Printf("pos=%d len=%d text=%q\n", o.Pos, o.Len, o.Str)
		}
	}
	return nil
}

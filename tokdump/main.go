package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/rom3r4/infact"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const usage = `tokdump: a tool for tokenizing infact object-construction files.

Usage:
  tokdump <command> [arguments]

Commands:
  dump [path ...]    print the token sequence of each file
  check [path ...]   tokenize files and report lexical errors only
`

// tokenRecord is the externally visible form of one token.
type tokenRecord struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Line  int    `json:"line"`
}

type fileTokens struct {
	Path   string        `json:"path"`
	Tokens []tokenRecord `json:"tokens"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	dumpCmd := flag.NewFlagSet("dump", flag.ExitOnError)
	jsonOutput := dumpCmd.Bool("json", false, "Output tokens in JSON format")
	concurrent := dumpCmd.Bool("concurrent", false, "Tokenize files concurrently")

	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)

	switch os.Args[1] {
	case "dump":
		dumpCmd.Parse(os.Args[2:])
		paths := dumpCmd.Args()
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "Error: missing file paths for dump command.")
			os.Exit(1)
		}
		if err := dumpFiles(paths, *jsonOutput, *concurrent); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		checkCmd.Parse(os.Args[2:])
		paths := checkCmd.Args()
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "Error: missing file paths for check command.")
			os.Exit(1)
		}
		if err := checkFiles(paths); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func dumpFiles(paths []string, jsonOutput, concurrent bool) error {
	results := make([]fileTokens, len(paths))
	if !concurrent {
		// 顺序处理
		for i, path := range paths {
			recs, err := dumpFile(path)
			if err != nil {
				return err
			}
			results[i] = fileTokens{Path: path, Tokens: recs}
		}
	} else {
		// 并发处理
		numWorkers := runtime.NumCPU()
		idxChan := make(chan int, len(paths))
		errChan := make(chan error, len(paths))
		var wg sync.WaitGroup

		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range idxChan {
					recs, err := dumpFile(paths[i])
					if err != nil {
						errChan <- err
						continue
					}
					results[i] = fileTokens{Path: paths[i], Tokens: recs}
				}
			}()
		}

		for i := range paths {
			idxChan <- i
		}
		close(idxChan)

		wg.Wait()
		close(errChan)

		var allErrors []error
		for err := range errChan {
			allErrors = append(allErrors, err)
		}
		if len(allErrors) > 0 {
			return errors.Join(allErrors...)
		}
	}

	if jsonOutput {
		err := json.MarshalWrite(os.Stdout, results, jsontext.Multiline(true), jsontext.WithIndent("  "))
		if err != nil {
			return fmt.Errorf("could not marshal json: %w", err)
		}
		return nil
	}

	for _, ft := range results {
		for _, rec := range ft.Tokens {
			fmt.Printf("%s:%d:%d: %s %q\n", ft.Path, rec.Line, rec.Start, rec.Type, rec.Text)
		}
	}
	return nil
}

// dumpFile tokenizes one file to completion. The full accessor surface
// of the stream is used so that the record carries type, position and
// line alongside the text.
func dumpFile(path string) ([]tokenRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	defer f.Close()

	ts, err := infact.NewTokenStream(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var recs []tokenRecord
	for ts.HasNext() {
		typ := ts.PeekType()
		start := ts.PeekStart()
		line := ts.PeekLineNumber()
		text, err := ts.Next()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recs = append(recs, tokenRecord{
			Type:  infact.TypeName(typ),
			Text:  text,
			Start: start,
			End:   ts.Pos(),
			Line:  line,
		})
	}
	return recs, nil
}

func checkFiles(paths []string) error {
	hasErrors := false
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		sink := func(e *infact.ScanError) {
			fmt.Fprintf(os.Stderr, "  - [%s] %s:%d:%d: %s\n", e.Class, path, e.Line, e.Pos, e.Message)
		}
		ts, err := infact.NewTokenStream(f, infact.WithErrorSink(sink))
		if err == nil {
			for ts.HasNext() {
				if _, err = ts.Next(); err != nil {
					break
				}
			}
		}
		if err != nil {
			hasErrors = true
		}
		f.Close()
	}
	if hasErrors {
		return fmt.Errorf("lexical errors found")
	}
	return nil
}

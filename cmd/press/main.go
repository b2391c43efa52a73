// Command press compresses and decompresses files with the codecs of the
// press module, and compares them against each other.
//
// Usage:
//
//	press compress   [-algorithm huffman] [-window 20] [-level N] [-o out] [-f] [-v] <file>
//	press decompress [-o out] [-f] [-v] <file>
//	press compare    [-algorithms a,b,...] [-window 20] [-level N] [-jobs N] <file>
//	press inspect    [-algorithm huffman|lz77] [-window 20] <file>
//
// Compressed files are frames that record the codec used, so decompress
// needs no -algorithm flag.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/presskit/press"
	"github.com/presskit/press/codecs"
)

// Exit statuses.
const (
	exitOK      = 0
	exitParam   = 1
	exitCodec   = 2
	exitRead    = 3
	exitWrite   = 4
	exitExists  = 5
	exitCorrupt = 6
	exitProcess = 7
	exitUnknown = 127
)

// An exitError is a failure with a known exit status.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func fail(code int, format string, args ...interface{}) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("press: ")
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("unexpected error: %v", r)
			code = exitUnknown
		}
	}()

	if len(args) == 0 {
		usage(os.Stderr)
		return exitParam
	}

	var err error
	switch args[0] {
	case "compress":
		err = runCompress(args[1:], stdout)
	case "decompress":
		err = runDecompress(args[1:], stdout)
	case "compare":
		err = runCompare(args[1:], stdout)
	case "inspect":
		err = runInspect(args[1:], stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		log.Printf("unknown command %q", args[0])
		usage(os.Stderr)
		return exitParam
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	log.Print(err)
	return exitCode(err)
}

func exitCode(err error) int {
	var ee *exitError
	var corrupt *press.CorruptDataError
	var token *press.InvalidTokenError
	switch {
	case errors.As(err, &ee):
		return ee.code
	case errors.As(err, &corrupt), errors.As(err, &token):
		return exitCorrupt
	case errors.Is(err, codecs.ErrUnknownCodec):
		return exitCodec
	default:
		return exitProcess
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage:
	press compress   [-algorithm huffman] [-window 20] [-level N] [-o out] [-f] [-v] <file>
	press decompress [-o out] [-f] [-v] <file>
	press compare    [-algorithms a,b,...] [-window 20] [-level N] [-jobs N] <file>
	press inspect    [-algorithm huffman|lz77] [-window 20] <file>
`)
	fmt.Fprintf(w, "\nalgorithms: %v\n", codecs.Names())
}

// parseFlags parses args with fs and returns the single file argument.
func parseFlags(fs *flag.FlagSet, args []string) (string, error) {
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", &exitError{code: exitParam, err: err}
	}
	if fs.NArg() != 1 {
		return "", fail(exitParam, "%s: expected one input file, got %d arguments", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}

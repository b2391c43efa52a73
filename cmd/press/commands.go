package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/presskit/press"
	"github.com/presskit/press/codecs"
	"github.com/presskit/press/frame"
	"github.com/presskit/press/huffman"
	"github.com/presskit/press/lz77"
)

func runCompress(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compress", flag.ContinueOnError)
	algorithm := fs.String("algorithm", "huffman", "codec to compress with")
	window := fs.Int("window", lz77.DefaultWindow, "LZ77 search window")
	level := fs.Int("level", 0, "compression level for reference codecs (0 for the default)")
	output := fs.String("o", "", "output file (default <file>"+frameExt+")")
	force := fs.Bool("f", false, "overwrite the output file")
	verbose := fs.Bool("v", false, "log progress")
	input, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if *window < 1 {
		return fail(exitParam, "compress: window must be at least 1, got %d", *window)
	}

	c, err := codecs.New(*algorithm, codecs.Options{Window: *window, Level: *level})
	if err != nil {
		return err
	}
	data, err := readInput(input)
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("compressing %s (%s) with %s", input, humanSize(len(data)), c.Name())
	}

	start := time.Now()
	framed, err := frame.Encode(nil, c, data)
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}
	elapsed := time.Since(start)

	if *output == "" {
		*output = compressedName(input)
	}
	if err := writeOutput(*output, framed, *force); err != nil {
		return err
	}
	if *verbose {
		log.Printf("wrote %s", *output)
	}
	printReport(stdout, report{
		Codec:    c.Name(),
		Original: len(data),
		Packed:   len(framed),
		Elapsed:  elapsed,
	})
	return nil
}

func runDecompress(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decompress", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default <file> without "+frameExt+")")
	force := fs.Bool("f", false, "overwrite the output file")
	verbose := fs.Bool("v", false, "log progress")
	input, err := parseFlags(fs, args)
	if err != nil {
		return err
	}

	framed, err := readInput(input)
	if err != nil {
		return err
	}

	start := time.Now()
	data, h, err := frame.Decode(nil, framed, codecs.Lookup(codecs.Options{}))
	if err != nil {
		return fmt.Errorf("decompress %s: %w", input, err)
	}
	elapsed := time.Since(start)
	if *verbose {
		log.Printf("decompressed %s with %s, checksum %08x verified", input, h.Codec, h.Checksum)
	}

	if *output == "" {
		*output = decompressedName(input)
	}
	if err := writeOutput(*output, data, *force); err != nil {
		return err
	}
	if *verbose {
		log.Printf("wrote %s", *output)
	}
	printReport(stdout, report{
		Codec:    h.Codec,
		Original: len(data),
		Packed:   len(framed),
		Elapsed:  elapsed,
	})
	return nil
}

func runCompare(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	algorithms := fs.String("algorithms", strings.Join(codecs.Names(), ","), "comma-separated codecs to compare")
	window := fs.Int("window", lz77.DefaultWindow, "LZ77 search window")
	level := fs.Int("level", 0, "compression level for reference codecs (0 for the default)")
	jobs := fs.Int("jobs", runtime.NumCPU(), "codecs to run at once")
	input, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if *window < 1 {
		return fail(exitParam, "compare: window must be at least 1, got %d", *window)
	}
	if *jobs < 1 {
		return fail(exitParam, "compare: jobs must be at least 1, got %d", *jobs)
	}

	opts := codecs.Options{Window: *window, Level: *level}
	var list []press.Codec
	for _, name := range strings.Split(*algorithms, ",") {
		c, err := codecs.New(strings.TrimSpace(name), opts)
		if err != nil {
			return err
		}
		list = append(list, c)
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	results := make([]report, len(list))
	sem := make(chan struct{}, *jobs)
	var wg sync.WaitGroup
	for i, c := range list {
		wg.Add(1)
		go func(i int, c press.Codec) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = measure(c, data)
		}(i, c)
	}
	wg.Wait()

	fmt.Fprintf(stdout, "%s: %s\n\n", input, humanSize(len(data)))
	printTable(stdout, results)

	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Codec)
		}
	}
	if len(failed) > 0 {
		return fail(exitProcess, "compare: %s failed", strings.Join(failed, ", "))
	}
	return nil
}

// measure compresses data with c, decompresses it again and checks that
// the result matches.
func measure(c press.Codec, data []byte) (r report) {
	r.Codec = c.Name()
	r.Original = len(data)
	defer func() {
		if p := recover(); p != nil {
			r.Err = fmt.Errorf("panic: %v", p)
		}
	}()

	start := time.Now()
	compressed, err := c.Compress(nil, data)
	if err != nil {
		r.Err = err
		return r
	}
	r.Elapsed = time.Since(start)
	r.Packed = len(compressed)

	start = time.Now()
	out, err := c.Decompress(nil, compressed)
	if err != nil {
		r.Err = err
		return r
	}
	r.DecodeElapsed = time.Since(start)
	if !bytes.Equal(out, data) {
		r.Err = errors.New("round trip mismatch")
	}
	return r
}

func runInspect(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	algorithm := fs.String("algorithm", "huffman", "huffman or lz77")
	window := fs.Int("window", lz77.DefaultWindow, "LZ77 search window")
	input, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if *algorithm != "huffman" && *algorithm != "lz77" {
		return fail(exitCodec, "inspect: unsupported algorithm %q (want huffman or lz77)", *algorithm)
	}
	if *window < 1 {
		return fail(exitParam, "inspect: window must be at least 1, got %d", *window)
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	if *algorithm == "lz77" {
		tokens := lz77.Compress(data, *window)
		fmt.Fprintf(stdout, "%d bytes, %d tokens, window %d\n", len(data), len(tokens), *window)
		stdout.Write(lz77.TextEncoder{}.Encode(nil, tokens))
		fmt.Fprintln(stdout)
		return nil
	}

	freq := huffman.Count(data)
	root := huffman.BuildTree(freq)
	if root == nil {
		fmt.Fprintln(stdout, "empty input")
		return nil
	}
	table, err := huffman.Derive(root)
	if err != nil {
		return err
	}
	if _, err := table.Dump(stdout); err != nil {
		return err
	}
	bits := table.WeightedLength(freq)
	fmt.Fprintf(stdout, "%d symbols, %d distinct, %d bits encoded (%s)\n",
		freq.Total(), freq.Len(), bits, humanSize(int((bits+7)/8)))
	return nil
}

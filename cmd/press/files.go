package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

const frameExt = ".prs"

func readInput(name string) ([]byte, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, fail(exitRead, "cannot open %s: %v", name, err)
	}
	if info.IsDir() {
		return nil, fail(exitRead, "%s is a directory", name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fail(exitRead, "cannot read %s: %v", name, err)
	}
	return data, nil
}

// writeOutput writes data to name, refusing to replace an existing file
// unless force is set.
func writeOutput(name string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fail(exitExists, "%s already exists; use -f to overwrite", name)
	}
	if err != nil {
		return fail(exitWrite, "cannot create %s: %v", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fail(exitWrite, "cannot write %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		return fail(exitWrite, "cannot write %s: %v", name, err)
	}
	return nil
}

func compressedName(input string) string {
	return input + frameExt
}

func decompressedName(input string) string {
	if strings.HasSuffix(input, frameExt) && len(input) > len(frameExt) {
		return strings.TrimSuffix(input, frameExt)
	}
	return input + ".out"
}

//go:build mage

// Package main contains Mage build targets for paper-prep developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "paper-prep"
	cmdPkg  = "./cmd/paper-prep"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check vets the module and runs the tests.
func Check() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	mg.Deps(Test)
	return nil
}

// Preprocess builds the CLI and runs it on the PDF named by $PDF, writing
// out/<name>.txt and out/<name>.json.
func Preprocess() error {
	mg.Deps(Build)
	pdf := os.Getenv("PDF")
	if pdf == "" {
		return fmt.Errorf("set PDF to the input file")
	}
	name := strings.TrimSuffix(filepath.Base(pdf), filepath.Ext(pdf))
	return sh.RunV(filepath.Join(binDir, binName), "preprocess",
		"--pdf", pdf,
		"--out_text", filepath.Join("out", name+".txt"),
		"--out_json", filepath.Join("out", name+".json"),
	)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints non-blank Go line counts for production and test code.
func Stats() error {
	var prod, test int
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || (d.Name() != "." && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countLines counts lines in path that are not blank after trimming.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}

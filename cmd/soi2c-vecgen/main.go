// Command soi2c-vecgen turns the YAML decode vectors into a Go test table.
//
// Usage:
//
//	soi2c-vecgen -vectors internal/vectors/testdata -output pkg/soi2c/golden_gen_test.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/notecard-tools/soi2c-go/internal/vectors"
)

func main() {
	vectorsDir := flag.String("vectors", "", "Directory (or file) with YAML decode vectors")
	output := flag.String("output", "", "Output path for the generated Go test file")
	pkg := flag.String("package", "soi2c_test", "Package name of the generated file")
	flag.Parse()

	if *vectorsDir == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: soi2c-vecgen -vectors <dir> -output <file> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*vectorsDir, *output, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(vectorsDir, output, pkg string) error {
	vs, err := vectors.Load(vectorsDir)
	if err != nil {
		return fmt.Errorf("loading vectors: %w", err)
	}
	if len(vs) == 0 {
		return fmt.Errorf("no vectors found in %s", vectorsDir)
	}

	code, err := Generate(filepath.ToSlash(vectorsDir), pkg, vs)
	if err != nil {
		return err
	}

	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s (%d vectors)\n", output, len(vs))
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}

//go:build mage

// Package main contains Mage build targets for inn-lookup developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a run expects.
var projectDirs = []string{
	"temp_pdf",
	".secrets",
}

const (
	binDir  = "bin"
	binName = "inn-lookup"
	cmdPkg  = "./cmd/inn-lookup"
)

// Init creates the working directory structure for a run.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := binPath()
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check builds the binary and verifies Java, the tabula jar, and the
// configured workbook.
func Check() error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath(), "check")
}

func binPath() string {
	out := filepath.Join(binDir, binName)
	if runtime.GOOS == "windows" || os.Getenv("GOOS") == "windows" {
		out += ".exe"
	}
	return out
}

// Clean removes build output and downloaded extracts.
func Clean() error {
	for _, dir := range []string{binDir, "temp_pdf"} {
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}

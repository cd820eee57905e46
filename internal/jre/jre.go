// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jre locates a Java runtime and runs jar files with it. The table
// extractor depends on tabula-java, so a missing runtime is the one
// condition that stops a whole batch.
package jre

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const binJava = "java"

// ErrNotFound reports that no working Java runtime could be located.
var ErrNotFound = errors.New("java runtime not found")

// Runtime runs jar files on a Java virtual machine.
type Runtime interface {
	// Name returns the path or name of the java binary in use.
	Name() string

	// Available reports whether the binary exists and answers -version.
	Available() bool

	// RunJar executes "java -jar jar args..." and writes its stdout to stdout.
	RunJar(ctx context.Context, jar string, args []string, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

type runtime struct {
	bin  string
	exec executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "-version") == nil
}

func (r *runtime) RunJar(ctx context.Context, jar string, args []string, stdout io.Writer) error {
	full := make([]string, 0, len(args)+2)
	full = append(full, "-jar", jar)
	full = append(full, args...)

	var stderr bytes.Buffer
	if err := r.exec.RunPiped(ctx, r.bin, full, stdout, &stderr); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s -jar %s: %w: %s", r.bin, filepath.Base(jar), err, firstLine(msg))
		}
		return fmt.Errorf("running %s -jar %s: %w", r.bin, filepath.Base(jar), err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Detect returns a runtime for bin (default "java"). When bin does not
// work it falls back to $JAVA_HOME/bin/java. It returns an error wrapping
// ErrNotFound if neither works.
func Detect(bin string) (Runtime, error) {
	return detect(defaultExec, bin, os.Getenv("JAVA_HOME"))
}

func detect(exec executor, bin, javaHome string) (Runtime, error) {
	if bin == "" {
		bin = binJava
	}
	candidates := []string{bin}
	if javaHome != "" {
		candidates = append(candidates, filepath.Join(javaHome, "bin", binJava))
	}

	for _, c := range candidates {
		rt := &runtime{bin: c, exec: exec}
		if rt.Available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(candidates, ", "))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

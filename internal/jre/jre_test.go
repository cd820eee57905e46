// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jre

import (
	"bytes"
	"context"
	"errors"
	"io"
	osexec "os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdout, stderr io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestDetect(t *testing.T) {
	homeJava := filepath.Join("/opt/jdk", "bin", "java")

	tests := []struct {
		name     string
		exec     *mockExecutor
		bin      string
		javaHome string
		wantName string
		wantErr  bool
	}{
		{
			name: "java on PATH",
			exec: &mockExecutor{
				availableBins: map[string]bool{"java": true},
				runnableCmds:  map[string]bool{"java -version": true},
			},
			wantName: "java",
		},
		{
			name: "configured binary",
			exec: &mockExecutor{
				availableBins: map[string]bool{"/usr/lib/jvm/bin/java": true},
				runnableCmds:  map[string]bool{"/usr/lib/jvm/bin/java -version": true},
			},
			bin:      "/usr/lib/jvm/bin/java",
			wantName: "/usr/lib/jvm/bin/java",
		},
		{
			name: "JAVA_HOME fallback",
			exec: &mockExecutor{
				availableBins: map[string]bool{homeJava: true},
				runnableCmds:  map[string]bool{homeJava + " -version": true},
			},
			javaHome: "/opt/jdk",
			wantName: homeJava,
		},
		{
			name: "on PATH but -version fails",
			exec: &mockExecutor{
				availableBins: map[string]bool{"java": true},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name:    "nothing installed",
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(tt.exec, tt.bin, tt.javaHome)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestRunJar(t *testing.T) {
	tests := []struct {
		name     string
		pipeFunc func(string, []string, io.Writer, io.Writer) error
		wantOut  string
		wantErr  string
	}{
		{
			name: "passes jar and args",
			pipeFunc: func(name string, args []string, stdout, _ io.Writer) error {
				if name != "java" {
					return errors.New("expected java binary")
				}
				_, _ = stdout.Write([]byte(strings.Join(args, " ")))
				return nil
			},
			wantOut: "-jar /opt/tabula.jar --lattice file.pdf",
		},
		{
			name: "failure includes first stderr line",
			pipeFunc: func(_ string, _ []string, _, stderr io.Writer) error {
				_, _ = stderr.Write([]byte("Error: Unable to access jarfile\nmore detail"))
				return errors.New("exit status 1")
			},
			wantErr: "Unable to access jarfile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &runtime{bin: "java", exec: &mockExecutor{runPipedFunc: tt.pipeFunc}}
			var out bytes.Buffer
			err := rt.RunJar(context.Background(), "/opt/tabula.jar", []string{"--lattice", "file.pdf"}, &out)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.NotContains(t, err.Error(), "more detail")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestRunJarBinaryVanished(t *testing.T) {
	rt := &runtime{bin: "java", exec: &mockExecutor{
		runPipedFunc: func(string, []string, io.Writer, io.Writer) error {
			return &osexec.Error{Name: "java", Err: osexec.ErrNotFound}
		},
	}}
	err := rt.RunJar(context.Background(), "/opt/tabula.jar", nil, io.Discard)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunJarMissingAbsolutePath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "jdk", "bin", "java")
	rt := &runtime{bin: bin, exec: &osExecutor{}}

	err := rt.RunJar(context.Background(), "tabula.jar", nil, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd, cleanup := newRootCmd()
	defer cleanup()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestKeysPrintsResult(t *testing.T) {
	path := writeFile(t, "a.txt", "hello world\n")

	out, _, err := execute(t, "keys", path, "dw")
	require.NoError(t, err)
	assert.Equal(t, "world\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(data), "file is untouched without --write")
}

func TestKeysWrite(t *testing.T) {
	path := writeFile(t, "a.txt", "hello world\n")

	_, stderr, err := execute(t, "keys", "--write", path, "wD")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello \n", string(data))
}

func TestKeysStandardMode(t *testing.T) {
	path := writeFile(t, "a.txt", "abc")

	out, _, err := execute(t, "keys", "--mode", "standard", "--cursor", "3", path, "de")
	require.NoError(t, err)
	assert.Equal(t, "abcde", out)
}

func TestKeysUnknownMode(t *testing.T) {
	path := writeFile(t, "a.txt", "abc")
	_, _, err := execute(t, "keys", "--mode", "emacs", path, "x")
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	pass := writeFile(t, "pass.yaml", `
- name: join lines
  text: "a\nb\n"
  keys: J
  expect: "a b\n"
`)
	out, _, err := execute(t, "replay", "--color", "never", pass)
	require.NoError(t, err)
	assert.Contains(t, out, "1 scenarios, 0 failed")

	fail := writeFile(t, "fail.yaml", `
- name: wrong
  text: "a\n"
  keys: x
  expect: "a\n"
`)
	out, _, err = execute(t, "replay", "--color", "never", pass, fail)
	var failed failedError
	require.True(t, errors.As(err, &failed), "error = %v", err)
	assert.Equal(t, 1, failed.n)
	assert.Contains(t, out, "FAIL wrong")
	assert.Contains(t, out, "[-a-]")
	assert.Contains(t, out, "2 scenarios, 1 failed")
}

func TestReplayBadColor(t *testing.T) {
	path := writeFile(t, "s.yaml", "- text: x\n  expect: x\n")
	_, _, err := execute(t, "replay", "--color", "rainbow", path)
	assert.ErrorContains(t, err, "invalid --color")
}

func TestConfigInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zep.toml")

	out, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	_, _, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	out, _, err = execute(t, "config", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := writeFile(t, "bad.toml", "[editor]\nstyle = \"fancy\"\n")
	_, _, err = execute(t, "config", "check", bad)
	assert.Error(t, err)
}

func TestConfigFlagApplies(t *testing.T) {
	cfg := writeFile(t, "zep.toml", "[editor]\ntab_width = 2\n")
	path := writeFile(t, "a.txt", "x\n")

	out, _, err := execute(t, "--config", cfg, "keys", path, ">>")
	require.NoError(t, err)
	assert.Equal(t, "  x\n", out)
}

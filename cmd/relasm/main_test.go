package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCmd executes the CLI with args and returns stdout and stderr.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const targetSource = `
.global TARGET
.word TARGET
TARGET:
.byte 0xAA
`

func TestBuild_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", targetSource)

	stdout, _, err := runCmd(t, "build", src)
	require.NoError(t, err)
	require.Contains(t, stdout, src+" loaded with no issues")
	require.Contains(t, stdout, "Successfully assembled to "+filepath.Join(dir, "prog.bin")+" (5 bytes, base 0x0)")

	data, err := os.ReadFile(filepath.Join(dir, "prog.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0xAA}, data)
}

func TestBuild_Rebase(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", targetSource)
	out := filepath.Join(dir, "out.bin")

	_, _, err := runCmd(t, "build", "--rebase", "0x1000", "-o", out, src)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), binary.LittleEndian.Uint32(data))
	require.Equal(t, byte(0xAA), data[4])
}

func TestBuild_Base(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", targetSource)
	atBase := filepath.Join(dir, "base.bin")
	rebased := filepath.Join(dir, "rebased.bin")

	stdout, _, err := runCmd(t, "build", "--base", "0x1000", "-o", atBase, src)
	require.NoError(t, err)
	require.Contains(t, stdout, "(5 bytes, base 0x1000)")
	_, _, err = runCmd(t, "build", "--rebase", "0x1000", "-o", rebased, src)
	require.NoError(t, err)

	want, err := os.ReadFile(rebased)
	require.NoError(t, err)
	got, err := os.ReadFile(atBase)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, uint32(0x1000), binary.LittleEndian.Uint32(got))
}

func TestBuild_Stdout(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", ".byte 1, 2, 3\n")

	stdout, _, err := runCmd(t, "build", "-o", "-", src)
	require.NoError(t, err)
	require.Equal(t, "\x01\x02\x03", stdout)

	stdout, _, err = runCmd(t, "build", "-o", "-", "--hexdump", src)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "00000000  01 02 03"), stdout)
}

func TestBuild_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, "one.s", ".byte 1\n")
	two := writeFile(t, dir, "two.s", ".hword 2\n")

	_, _, err := runCmd(t, "build", one, two)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "one.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{1}, data)
	data, err = os.ReadFile(filepath.Join(dir, "two.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{2, 0}, data)

	_, _, err = runCmd(t, "build", "-o", filepath.Join(dir, "x.bin"), one, two)
	require.Error(t, err)
}

func TestBuild_DefineFlags(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", ".byte WIDTH, HEIGHT\n")
	script := writeFile(t, dir, "defs.lua", "WIDTH = 0x20\nHEIGHT = WIDTH / 2\n")
	out := filepath.Join(dir, "out.bin")

	_, _, err := runCmd(t, "build", "--defines", script, "-D", "HEIGHT=3", "-o", out, src)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte{0x20, 3}, data)
}

func TestBuild_WarningsAndListing(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", "L:\n.byte L\n")

	stdout, stderr, err := runCmd(t, "build", "--listing", src)
	require.NoError(t, err)
	require.Contains(t, stderr, "warning: ")
	require.Contains(t, stdout, "00000000  00")
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.s", ".byte 1\n.frobnicate\n")

	_, _, err := runCmd(t, "build", bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), bad+":1")

	good := writeFile(t, dir, "good.s", ".byte 1\n")
	_, _, err = runCmd(t, "build", "--base", "lots", good)
	require.Error(t, err)
	_, _, err = runCmd(t, "build", "--rebase", "0x100000000", good)
	require.Error(t, err)
	_, _, err = runCmd(t, "build", "-D", "NOVALUE", good)
	require.Error(t, err)
}

func TestSymbols(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", ".global main\n.byte 0\nmain:\n.word main\ndata:\n")

	stdout, _, err := runCmd(t, "symbols", src)
	require.NoError(t, err)
	require.Equal(t, "00000001 G main\n00000005   data\n", stdout)

	stdout, _, err = runCmd(t, "symbols", "--dump", src)
	require.NoError(t, err)
	require.Contains(t, stdout, "Relocations")
	require.Contains(t, stdout, "main")
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCmd(t, "version")
	require.NoError(t, err)
	require.Equal(t, "relasm dev\n", stdout)
}

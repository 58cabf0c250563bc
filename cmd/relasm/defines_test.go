package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefinesScript(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "defs.lua", `
SCREEN_W = 320
SCREEN_H = 200
SCREEN_BYTES = SCREEN_W * SCREEN_H
IO_BASE = 0xF000
NEG = -4
title = "ignored"
local hidden = 7
palette = { 1, 2, 3 }
`)
	defines, err := loadDefinesScript(script)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{
		"SCREEN_W":     320,
		"SCREEN_H":     200,
		"SCREEN_BYTES": 64000,
		"IO_BASE":      0xF000,
		"NEG":          -4,
	}, defines)
}

func TestLoadDefinesScript_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadDefinesScript(filepath.Join(dir, "missing.lua"))
	require.Error(t, err)

	syntax := writeFile(t, dir, "syntax.lua", "X = = 1\n")
	_, err = loadDefinesScript(syntax)
	require.Error(t, err)

	fraction := writeFile(t, dir, "fraction.lua", "HALF = 0.5\nB = 1.5\nOK = 2\n")
	_, err = loadDefinesScript(fraction)
	require.Error(t, err)
	require.Contains(t, err.Error(), "B, HALF")
}

func TestParseDefineFlags(t *testing.T) {
	defines := map[string]int64{"A": 1}
	require.NoError(t, parseDefineFlags(defines, []string{"A=0x10", "B = -3", "C=7"}))
	require.Equal(t, map[string]int64{"A": 16, "B": -3, "C": 7}, defines)

	for _, bad := range []string{"NOEQUALS", "=5", "X=abc", "Y="} {
		require.Error(t, parseDefineFlags(map[string]int64{}, []string{bad}), bad)
	}
}

func TestParseAddress(t *testing.T) {
	for in, want := range map[string]uint32{"0": 0, "4096": 4096, "0x1000": 0x1000, "0xFFFFFFFF": 0xFFFFFFFF} {
		got, err := parseAddress(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "-1", "0x100000000", "$1000", "base"} {
		_, err := parseAddress(bad)
		require.Error(t, err, bad)
	}
}

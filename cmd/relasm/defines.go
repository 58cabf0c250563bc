package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/golang/glog"
	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/relasm/assembler"
)

// loadDefinesScript runs a Lua script and collects every global number it
// leaves behind as a constant, e.g.
//
//	SCREEN_W = 320
//	SCREEN_H = 200
//	SCREEN_BYTES = SCREEN_W * SCREEN_H
//	IO_BASE = 0xF000
//
// Strings, tables and functions are ignored. Non-integral numbers are an
// error.
func loadDefinesScript(path string) (map[string]int64, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("defines script %s: %w", path, err)
	}

	defines := make(map[string]int64)
	var bad []string
	L.G.Global.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			return
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			return
		}
		f := float64(n)
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			bad = append(bad, string(name))
			return
		}
		defines[string(name)] = int64(f)
	})
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, fmt.Errorf("defines script %s: non-integer values for %s", path, strings.Join(bad, ", "))
	}
	glog.V(1).Infof("loaded %d constants from %s", len(defines), path)
	return defines, nil
}

// parseDefineFlags parses NAME=VALUE pairs into defines, overriding any
// value a script set.
func parseDefineFlags(defines map[string]int64, pairs []string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid define %q: want NAME=VALUE", pair)
		}
		v, ok := assembler.ParseLiteral(value)
		if !ok {
			return fmt.Errorf("invalid define %q: value must be 0x hex or decimal", pair)
		}
		defines[name] = v
	}
	return nil
}

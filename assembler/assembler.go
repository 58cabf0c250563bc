// assembler.go

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
Package assembler implements a single-pass directive assembler with
post-hoc relocation.

Source syntax (one statement or label per line):

	@ comment to end of line
	NAME:                  label at the current output offset
	.include "file"        assemble another file in place (once per path)
	.equ NAME, value       define an immutable constant
	.global NAME           export NAME, creating a zero-offset placeholder if unknown
	.byte v, ...           8-bit values, truncated
	.hword v, ...          16-bit LE values, truncated
	.word v, ... / .int    32-bit LE values
	.end                   stop reading the current file
	.section / .align      accepted and ignored

Values are 0x hex, signed decimal, constants, labels, or a chain of
+ - * / applied strictly left to right with no precedence.

A label reference evaluates to the session base plus the offset the label
has at that point in the pass; a later definition never patches earlier
uses. ".global NAME" before the first use is the way to refer forward;
the reference then resolves to the placeholder offset 0, i.e. the base.
*/
package assembler

import (
	"fmt"

	"github.com/golang/glog"
)

// Assembler is one assembly session. It owns the output buffer, the symbol
// and constant tables, the relocation list and the set of loaded files.
// A session is not safe for concurrent use; independent sessions share
// nothing.
type Assembler struct {
	buf     []byte
	symbols *symbolTable
	defines map[string]int64
	relocs  []uint32
	base    uint32
	loaded  map[string]bool

	strictRelocs bool
	listingMode  bool
	listing      []listingEntry
	warnings     []string
	statuses     []string

	// current position, for diagnostics
	file      string
	line      int
	slotWidth int
}

// NewAssembler creates a session that assembles for load address base:
// label references emit base+offset, as if the buffer had been assembled
// at 0 and rebased to base. defines pre-seeds the constant table and may
// be nil.
func NewAssembler(base uint32, defines map[string]int64) *Assembler {
	a := &Assembler{
		symbols: newSymbolTable(),
		defines: make(map[string]int64, len(defines)),
		base:    base,
		loaded:  make(map[string]bool),
	}
	for name, v := range defines {
		a.defines[name] = v
	}
	return a
}

// AssembleFile assembles path in a fresh session.
func AssembleFile(path string, base uint32, defines map[string]int64) (*Assembler, error) {
	a := NewAssembler(base, defines)
	if _, err := a.Load(path); err != nil {
		return nil, err
	}
	return a, nil
}

// SetStrictRelocations limits relocation entries to word/int slots. By
// default every label resolution is recorded, including byte and hword
// values, whose neighbours a later Rebase will overwrite.
func (a *Assembler) SetStrictRelocations(enabled bool) {
	a.strictRelocs = enabled
}

// SetListingMode turns recording of listing entries on or off. Only lines
// assembled while it is on are listed.
func (a *Assembler) SetListingMode(enabled bool) {
	a.listingMode = enabled
}

// GetListing renders one line per emitting source line: load address, up
// to eight emitted bytes and the source text. Addresses use the base that
// was in effect when the line was assembled.
func (a *Assembler) GetListing() []string {
	lines := make([]string, 0, len(a.listing))
	for _, e := range a.listing {
		lines = append(lines, e.String())
	}
	return lines
}

// GetWarnings returns the non-fatal diagnostics of the session, each
// prefixed with file and line.
func (a *Assembler) GetWarnings() []string {
	return append([]string(nil), a.warnings...)
}

// Statuses returns the status line of every load in the session, in order.
func (a *Assembler) Statuses() []string {
	return a.statuses
}

// Bytes returns the output buffer. The slice aliases session state.
func (a *Assembler) Bytes() []byte {
	return a.buf
}

// Len returns the output length in bytes.
func (a *Assembler) Len() int {
	return len(a.buf)
}

// Base returns the base address the buffer is currently encoded for.
func (a *Assembler) Base() uint32 {
	return a.base
}

// Label returns the offset currently bound to name.
func (a *Assembler) Label(name string) (uint32, error) {
	sym, ok := a.symbols.lookup(name)
	if !ok {
		return 0, &Error{Kind: KindInvalidValue, Text: name, Err: fmt.Errorf("unknown label %s", name)}
	}
	return sym.Offset, nil
}

// Symbols returns a copy of the symbol table ordered by offset.
func (a *Assembler) Symbols() []Symbol {
	return a.symbols.snapshot()
}

// Define returns the value of a named constant.
func (a *Assembler) Define(name string) (int64, bool) {
	v, ok := a.defines[name]
	return v, ok
}

// Relocations returns a copy of the recorded relocation offsets.
func (a *Assembler) Relocations() []uint32 {
	return append([]uint32(nil), a.relocs...)
}

func (a *Assembler) addWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	a.warnings = append(a.warnings, msg)
	glog.V(1).Info("warning: ", msg)
}

// listingShown is how many emitted bytes a listing line spells out.
const listingShown = 8

type listingEntry struct {
	addr   uint32
	data   []byte
	more   bool
	source string
}

func (e listingEntry) String() string {
	hex := fmt.Sprintf("% X", e.data)
	if e.more {
		hex += "..."
	}
	return fmt.Sprintf("%08X  %-24s %s", e.addr, hex, e.source)
}

// addListing records the bytes a source line emitted at offset. The bytes
// are copied since a later Rebase rewrites the buffer in place.
func (a *Assembler) addListing(offset int, data []byte, source string) {
	if !a.listingMode {
		return
	}
	e := listingEntry{addr: a.base + uint32(offset), source: source}
	if len(data) > listingShown {
		data, e.more = data[:listingShown], true
	}
	e.data = append([]byte(nil), data...)
	a.listing = append(a.listing, e)
}

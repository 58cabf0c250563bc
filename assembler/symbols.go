// symbols.go

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

package assembler

import "sort"

// Symbol is a label bound to a byte offset in the output buffer.
type Symbol struct {
	Name     string
	Offset   uint32
	Exported bool
}

// symbolTable maps label names to symbols. Entries are mutated in place:
// redefining a label moves it, it never creates a second entry.
type symbolTable struct {
	entries map[string]*Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{entries: make(map[string]*Symbol)}
}

func (t *symbolTable) lookup(name string) (*Symbol, bool) {
	s, ok := t.entries[name]
	return s, ok
}

// define binds name to offset, creating the symbol if needed.
func (t *symbolTable) define(name string, offset uint32) *Symbol {
	if s, ok := t.entries[name]; ok {
		s.Offset = offset
		return s
	}
	s := &Symbol{Name: name, Offset: offset}
	t.entries[name] = s
	return s
}

// export marks name exported. Unknown names get a placeholder at offset 0
// so they can be referenced before their definition.
func (t *symbolTable) export(name string) *Symbol {
	s, ok := t.entries[name]
	if !ok {
		s = &Symbol{Name: name}
		t.entries[name] = s
	}
	s.Exported = true
	return s
}

// snapshot returns copies of all symbols ordered by offset, then name.
func (t *symbolTable) snapshot() []Symbol {
	out := make([]Symbol, 0, len(t.entries))
	for _, s := range t.entries {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Offset != out[j].Offset {
			return out[i].Offset < out[j].Offset
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// loader.go

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

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// Load assembles the file at path into the session and returns its status
// line. A path that was loaded before is not read again.
//
// Any error aborts the session; the caller must discard it.
func (a *Assembler) Load(path string) (string, error) {
	key := filepath.Clean(path)
	if a.loaded[key] {
		return a.status(fmt.Sprintf("%s was already loaded", path)), nil
	}
	// Marked before reading so an include cycle short-circuits.
	a.loaded[key] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Kind: KindFileInclusion, Text: path, Err: err}
	}
	return a.process(path, string(data))
}

// LoadSource assembles source as if it had been read from a file called
// name. Includes are resolved relative to the directory of name.
func (a *Assembler) LoadSource(name, source string) (string, error) {
	key := filepath.Clean(name)
	if a.loaded[key] {
		return a.status(fmt.Sprintf("%s was already loaded", name)), nil
	}
	a.loaded[key] = true
	return a.process(name, source)
}

func (a *Assembler) status(s string) string {
	a.statuses = append(a.statuses, s)
	glog.V(1).Info(s)
	return s
}

func (a *Assembler) process(name, source string) (string, error) {
	glog.V(1).Infof("assembling %s at offset 0x%x", name, len(a.buf))

	prevFile, prevLine := a.file, a.line
	defer func() {
		a.file, a.line = prevFile, prevLine
	}()
	a.file = name

	for i, raw := range strings.Split(source, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		a.line = i

		st := Tokenize(raw)
		if st.Label != "" {
			sym := a.symbols.define(st.Label, uint32(len(a.buf)))
			glog.V(2).Infof("%s:%d: label %s = 0x%x", name, i, sym.Name, sym.Offset)
		}
		if st.Directive == "" {
			continue
		}

		start := len(a.buf)
		stop, err := a.dispatch(st)
		if err != nil {
			return "", located(err, name, i, raw)
		}
		if st.Directive != "include" && len(a.buf) > start {
			a.addListing(start, a.buf[start:], strings.TrimSpace(raw))
		}
		if stop {
			glog.V(1).Infof("%s:%d: end of assembly for this file", name, i)
			break
		}
	}

	return a.status(fmt.Sprintf("%s loaded with no issues", name)), nil
}

// includePath resolves an include argument against the directory of the
// file being assembled.
func (a *Assembler) includePath(arg string) string {
	p := strings.Trim(arg, "\"'")
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(a.file), p)
}

// tokenizer.go

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
	"strings"
	"unicode"
)

// Statement is one tokenized source line.
type Statement struct {
	Label     string   // label defined on this line, "" if none
	Directive string   // directive name without the leading '.', "" if none
	Args      []string // argument tokens in source order, whitespace removed
}

// Tokenize splits a source line into an optional label, an optional
// directive and its comma separated arguments. Comments start at '@'.
//
// Whitespace ends a directive name and is otherwise dropped, so
// ".equ SIZE, 4 * 2" yields the arguments "SIZE" and "4*2".
func Tokenize(line string) Statement {
	var (
		st          Statement
		tok         strings.Builder
		inDirective bool
		haveArgs    bool
	)

	flushArg := func() {
		st.Args = append(st.Args, tok.String())
		tok.Reset()
	}

	for _, r := range line {
		if r == '@' {
			break
		}
		if inDirective {
			if unicode.IsSpace(r) {
				inDirective = false
				continue
			}
			st.Directive += string(r)
			continue
		}
		switch {
		case r == '.' && tok.Len() == 0 && st.Directive == "" && !haveArgs:
			inDirective = true
		case r == ':' && st.Directive == "":
			st.Label = tok.String()
			tok.Reset()
		case r == ',' && st.Directive != "":
			flushArg()
			haveArgs = true
		case unicode.IsSpace(r):
		default:
			tok.WriteRune(r)
			if st.Directive != "" {
				haveArgs = true
			}
		}
	}

	if st.Directive != "" && haveArgs {
		flushArg()
	}
	return st
}

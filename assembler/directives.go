// directives.go

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
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
)

// dispatch runs one directive. stop is true after .end.
func (a *Assembler) dispatch(st Statement) (stop bool, err error) {
	switch st.Directive {
	case "include":
		if len(st.Args) != 1 {
			return false, definitionErr("include takes 1 argument, got %d", len(st.Args))
		}
		path := a.includePath(st.Args[0])
		if _, err := a.Load(path); err != nil {
			return false, err
		}

	case "equ":
		if len(st.Args) != 2 {
			return false, definitionErr("equ takes 2 arguments, got %d", len(st.Args))
		}
		return false, a.defineConstant(st.Args[0], st.Args[1])

	case "global":
		if len(st.Args) != 1 {
			return false, definitionErr("global takes 1 argument, got %d", len(st.Args))
		}
		sym := a.symbols.export(st.Args[0])
		glog.V(2).Infof("%s:%d: global %s (offset 0x%x)", a.file, a.line, sym.Name, sym.Offset)

	case "byte":
		return false, a.emit(st, 1)
	case "hword":
		return false, a.emit(st, 2)
	case "word", "int":
		return false, a.emit(st, 4)

	case "end":
		return true, nil

	case "section", "align":
		// accepted for source compatibility, no effect

	default:
		return false, &Error{Kind: KindUnsupportedDirective, Err: fmt.Errorf("unsupported directive .%s", st.Directive)}
	}
	return false, nil
}

func (a *Assembler) defineConstant(name, expr string) error {
	if _, exists := a.defines[name]; exists {
		return definitionErr("constant %s already defined", name)
	}
	v, err := a.evalExpr(expr)
	if err != nil {
		return err
	}
	a.defines[name] = v
	glog.V(2).Infof("%s:%d: equ %s = %d", a.file, a.line, name, v)
	return nil
}

// emit evaluates each argument and appends it as a little-endian value of
// width bytes, truncating without range checks. Each value is appended
// before the next argument is evaluated, so a relocation recorded while
// evaluating it points at its own slot.
func (a *Assembler) emit(st Statement, width int) error {
	if len(st.Args) == 0 {
		return definitionErr("%s needs at least one value", st.Directive)
	}
	a.slotWidth = width
	defer func() { a.slotWidth = 0 }()

	var tmp [4]byte
	for _, arg := range st.Args {
		v, err := a.evalExpr(arg)
		if err != nil {
			return err
		}
		switch width {
		case 1:
			tmp[0] = byte(v)
		case 2:
			binary.LittleEndian.PutUint16(tmp[:], uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(tmp[:], uint32(v))
		}
		a.buf = append(a.buf, tmp[:width]...)
	}
	return nil
}

// expr.go

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
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/glog"
)

// ParseLiteral parses a hex ("0x1F") or signed decimal ("-5") literal using
// the same rules as the expression evaluator.
func ParseLiteral(s string) (int64, bool) {
	v, ok, err := literal(stripSpaces(s))
	if !ok || err != nil {
		return 0, false
	}
	return v, true
}

// literal reports whether s has the shape of a hex or decimal literal and,
// if so, its value. A literal that does not fit 64 bits matches with an
// error.
func literal(s string) (int64, bool, error) {
	if strings.HasPrefix(s, "0x") {
		digits := s[2:]
		if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return !isHexDigit(r) }) >= 0 {
			return 0, false, nil
		}
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return 0, true, definitionErr("hex literal %s out of range", s)
		}
		return int64(v), true, nil
	}

	digits := s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, true, definitionErr("decimal literal %s out of range", s)
	}
	return v, true, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// evalExpr resolves an argument to an integer. The first matching category
// wins: hex literal, decimal literal, constant, label, arithmetic. Resolving
// a label records a relocation entry at the current end of the buffer.
func (a *Assembler) evalExpr(s string) (int64, error) {
	s = stripSpaces(s)

	if v, ok, err := literal(s); ok {
		return v, err
	}
	if v, ok := a.defines[s]; ok {
		return v, nil
	}
	if sym, ok := a.symbols.lookup(s); ok {
		a.recordRelocation(sym.Name)
		return int64(a.base) + int64(sym.Offset), nil
	}
	if strings.IndexFunc(s, func(r rune) bool { return r < 0x80 && isOperator(byte(r)) }) >= 0 {
		return a.evalArithmetic(s)
	}
	return 0, invalidValue(s)
}

// evalArithmetic applies + - * / strictly left to right with no
// precedence, starting from 0 as if the text began with '+'. A sign
// directly in front of an operand belongs to that operand.
func (a *Assembler) evalArithmetic(s string) (int64, error) {
	var acc int64
	op := byte('+')
	start := 0

	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			if !isOperator(s[i]) {
				continue
			}
			if i == start && (s[i] == '+' || s[i] == '-') {
				continue
			}
		}

		operand := s[start:i]
		if operand == "" || operand == "+" || operand == "-" {
			return 0, invalidValue(s)
		}
		v, err := a.evalOperand(operand)
		if err != nil {
			return 0, err
		}

		switch op {
		case '+':
			acc += v
		case '-':
			acc -= v
		case '*':
			acc *= v
		case '/':
			if v == 0 {
				return 0, definitionErr("division by zero in %s", s)
			}
			acc /= v
		}

		if i < len(s) {
			op = s[i]
		}
		start = i + 1
	}
	return acc, nil
}

func (a *Assembler) evalOperand(operand string) (int64, error) {
	if operand[0] == '-' || operand[0] == '+' {
		if _, ok, _ := literal(operand); !ok {
			v, err := a.evalExpr(operand[1:])
			if operand[0] == '-' {
				v = -v
			}
			return v, err
		}
	}
	return a.evalExpr(operand)
}

// recordRelocation notes that the value about to be emitted at the end of
// the buffer was derived from a label. Unless strict relocations are on,
// this happens whatever the width of the slot.
func (a *Assembler) recordRelocation(label string) {
	offset := uint32(len(a.buf))
	if a.slotWidth != 4 {
		if a.strictRelocs {
			glog.V(2).Infof("skipping relocation for %s at 0x%x: %d-byte slot", label, offset, a.slotWidth)
			return
		}
		where := "outside a data slot"
		if a.slotWidth > 0 {
			where = "in a " + strconv.Itoa(a.slotWidth) + "-byte slot"
		}
		a.addWarning("%s:%d: label %s used %s is relocated as 4 bytes", a.file, a.line, label, where)
	}
	a.relocs = append(a.relocs, offset)
	glog.V(2).Infof("relocation 0x%x via %s", offset, label)
}

package assembler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"testing"
)

func evalString(t *testing.T, a *Assembler, s string) int64 {
	t.Helper()
	v, err := a.evalExpr(s)
	if err != nil {
		t.Fatalf("evalExpr(%q) failed: %v", s, err)
	}
	return v
}

func TestExpr_LiteralRoundTrip(t *testing.T) {
	a := NewAssembler(0, nil)
	values := []int64{0, 1, 9, 10, 15, 16, 255, 256, 0xFFFF, 0x7FFFFFFF, 0xFFFFFFFF, -1, -5, -128, math.MaxInt64, math.MinInt64}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		values = append(values, rng.Int63()-rng.Int63())
	}

	for _, v := range values {
		hex := fmt.Sprintf("0x%x", uint64(v))
		if got := evalString(t, a, hex); got != v {
			t.Errorf("%s = %d, want %d", hex, got, v)
		}
		dec := strconv.FormatInt(v, 10)
		if got := evalString(t, a, dec); got != v {
			t.Errorf("%s = %d, want %d", dec, got, v)
		}
	}
	if len(a.relocs) != 0 {
		t.Errorf("literals recorded %d relocations", len(a.relocs))
	}
}

func TestExpr_HexCase(t *testing.T) {
	a := NewAssembler(0, nil)
	if got := evalString(t, a, "0xaBcD"); got != 0xABCD {
		t.Errorf("0xaBcD = %#x", got)
	}
	if got := evalString(t, a, "+12"); got != 12 {
		t.Errorf("+12 = %d", got)
	}
}

func TestExpr_LeftToRight(t *testing.T) {
	a := NewAssembler(0, nil)
	tests := []struct {
		expr string
		want int64
	}{
		{"4-2*3", 6},
		{"2+3*4", 20},
		{"10/3*3", 9},
		{"1 + 2", 3},
		{"100 / 10 / 5", 2},
		{"-4+2", -2},
		{"2*-3", -6},
		{"4--2", 6},
		{"0x10+0x10", 32},
		{"7-10", -3},
	}
	for _, tc := range tests {
		if got := evalString(t, a, tc.expr); got != tc.want {
			t.Errorf("%s = %d, want %d", tc.expr, got, tc.want)
		}
	}
}

func TestExpr_LeftToRightProperty(t *testing.T) {
	a := NewAssembler(0, nil)
	rng := rand.New(rand.NewSource(42))
	ops := []byte{'+', '-', '*', '/'}

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(6)
		expr := ""
		var want int64
		for j := 0; j < n; j++ {
			operand := int64(1 + rng.Intn(50))
			op := byte('+')
			if j > 0 {
				op = ops[rng.Intn(len(ops))]
				expr += string(op)
			}
			expr += strconv.FormatInt(operand, 10)
			switch op {
			case '+':
				want += operand
			case '-':
				want -= operand
			case '*':
				want *= operand
			case '/':
				want /= operand
			}
		}
		if got := evalString(t, a, expr); got != want {
			t.Fatalf("%s = %d, want %d", expr, got, want)
		}
	}
}

func TestExpr_ResolutionOrder(t *testing.T) {
	a := NewAssembler(0, map[string]int64{"WIDTH": 320})
	a.buf = make([]byte, 8)
	a.symbols.define("table", 4)

	if got := evalString(t, a, "WIDTH"); got != 320 {
		t.Errorf("WIDTH = %d", got)
	}
	if len(a.relocs) != 0 {
		t.Fatalf("constant recorded a relocation")
	}

	if got := evalString(t, a, "table"); got != 4 {
		t.Errorf("table = %d", got)
	}
	if got := evalString(t, a, "table + WIDTH * 2"); got != 648 {
		t.Errorf("table + WIDTH * 2 = %d", got)
	}
	if got := evalString(t, a, "-table"); got != -4 {
		t.Errorf("-table = %d", got)
	}
	want := []uint32{8, 8, 8}
	if fmt.Sprint(a.relocs) != fmt.Sprint(want) {
		t.Errorf("relocs = %v, want %v", a.relocs, want)
	}
}

func TestExpr_Errors(t *testing.T) {
	a := NewAssembler(0, nil)
	tests := []struct {
		expr string
		want error
	}{
		{"missing", ErrInvalidValue},
		{"", ErrInvalidValue},
		{"1+", ErrInvalidValue},
		{"-", ErrInvalidValue},
		{"1+nope", ErrInvalidValue},
		{"0xZZ", ErrInvalidValue},
		{"(1)", ErrInvalidValue},
		{"4/0", ErrDefinition},
		{"99999999999999999999", ErrDefinition},
		{"0x1ffffffffffffffff", ErrDefinition},
	}
	for _, tc := range tests {
		_, err := a.evalExpr(tc.expr)
		if !errors.Is(err, tc.want) {
			t.Errorf("evalExpr(%q) error = %v, want %v", tc.expr, err, tc.want)
		}
	}
}

func TestParseLiteral(t *testing.T) {
	if v, ok := ParseLiteral("0x1000"); !ok || v != 0x1000 {
		t.Errorf("ParseLiteral(0x1000) = %d, %v", v, ok)
	}
	if v, ok := ParseLiteral(" -7 "); !ok || v != -7 {
		t.Errorf("ParseLiteral(-7) = %d, %v", v, ok)
	}
	for _, s := range []string{"", "0b101", "010x", "LABEL", "1+1"} {
		if _, ok := ParseLiteral(s); ok {
			t.Errorf("ParseLiteral(%q) accepted", s)
		}
	}
}

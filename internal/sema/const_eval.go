package sema

import (
	"fortio.org/safecast"

	"karst/internal/ast"
)

// evalConstExpr folds an expression to an int64 constant. Identifiers are
// never constant here; there is no symbol environment for attribute
// arguments. Division by zero and out-of-range shifts make the whole
// expression non-constant instead of panicking.
func (c *checker) evalConstExpr(id ast.ExprID) (int64, bool) {
	if !id.IsValid() {
		return 0, false
	}
	e := c.builder.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIntLit:
		return e.Int, true
	case ast.ExprParen:
		return c.evalConstExpr(e.X)
	case ast.ExprUnary:
		v, ok := c.evalConstExpr(e.X)
		if !ok {
			return 0, false
		}
		if e.Un == ast.UnNeg {
			return -v, true
		}
		return v, true
	case ast.ExprBinary:
		l, ok := c.evalConstExpr(e.X)
		if !ok {
			return 0, false
		}
		r, ok := c.evalConstExpr(e.Y)
		if !ok {
			return 0, false
		}
		switch e.Bin {
		case ast.BinAdd:
			return l + r, true
		case ast.BinSub:
			return l - r, true
		case ast.BinMul:
			return l * r, true
		case ast.BinDiv:
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case ast.BinRem:
			if r == 0 {
				return 0, false
			}
			return l % r, true
		case ast.BinShl, ast.BinShr:
			shift, err := safecast.Conv[uint8](r)
			if err != nil || shift > 63 {
				return 0, false
			}
			if e.Bin == ast.BinShl {
				return l << shift, true
			}
			return l >> shift, true
		}
	}
	return 0, false
}

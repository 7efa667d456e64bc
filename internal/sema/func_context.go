package sema

import "karst/internal/ast"

// FuncContext carries per-function analysis state. Attribute validation only
// reads the switch stack; the statement walk maintains it.
type FuncContext struct {
	switchStack []ast.StmtID
}

func (fc *FuncContext) PushSwitch(id ast.StmtID) {
	fc.switchStack = append(fc.switchStack, id)
}

func (fc *FuncContext) PopSwitch() {
	fc.switchStack = fc.switchStack[:len(fc.switchStack)-1]
}

// InSwitch reports whether analysis is currently inside the body of at
// least one switch statement.
func (fc *FuncContext) InSwitch() bool {
	return len(fc.switchStack) > 0
}

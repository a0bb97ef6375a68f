// Package etds translates infix arithmetic expressions into abstract syntax
// trees using a predictive recursive-descent parser.
//
// Package: etds
// Title: Expression Translation Engine
// Description: Ties the lexer, the parser and the symbol table together
//              behind a single Compile call and classifies the three error
//              kinds a translation can fail with.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine facade
//
// The grammar, after left-recursion elimination:
//
//	E  -> T E'
//	E' -> + T E' | - T E' | ε
//	T  -> F T'
//	T' -> * F T' | / F T' | ε
//	F  -> ( E ) | id | num
//
// Usage:
//
//	res, err := etds.Compile("a - b - c")
//	if err != nil {
//		fmt.Println(etds.Diagnostic(err)) // e.g. "SyntaxError at 1:3: ..."
//		return
//	}
//	fmt.Println(ast.String(res.Tree)) // Bin('-', Bin('-', Id(a), Id(b)), Id(c))
package etds

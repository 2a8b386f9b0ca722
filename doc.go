// Package eel implements a small numeric expression language in the style of
// the MilkDrop preset language EEL.
//
// Every value is a float64. A program is a sequence of expressions separated
// by semicolons, and its value is the value of the last one. Names are
// case-insensitive variables which start at 0 and need no declaration:
//
//	x = 2; y += x * 3; if(y > 5, y, -y)
//
// Comparisons and truth tests use a tolerance of Epsilon, so 1e-6 is false and
// 1 == 1.000001 is true. Division by zero is 0 rather than an infinity. The
// control forms if, while, loop, exec2, exec3, and assign evaluate their
// arguments lazily; everything else is an ordinary function from DefaultFuncs.
//
// Programs run against an Env. An Env holds named pools: each pool has its own
// set of global variables, which keep their values from one evaluation to the
// next, and its own megabuf of BufferSize slots. A single gmegabuf is shared by
// every pool. Names not declared global with Globals are local to a single
// evaluation.
//
// Parsing and evaluation errors are *Error values carrying the source span
// responsible, which hosts can render as a caret diagnostic.
package eel

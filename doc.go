// Package scicalc implements the expression engine of a scientific
// calculator on float64.
//
// An expression is tokenized, reordered into postfix with the shunting-yard
// algorithm, and evaluated on a value stack. The syntax is what calculator
// buttons produce: decimal literals, + - * / and parentheses, and functions
// applied to a parenthesized group, like "sin(30) + √(2) * n!(5)". A + or -
// where an operand is expected is a sign. Constants like π are substituted
// by the caller before evaluation.
//
// Trigonometric functions read the angle mode from the evaluation Context,
// never from package state. Malformed input is an error unless parsing is
// Lenient, which skips what it can't read and keeps going.
//
package scicalc

// SPDX-License-Identifier: MIT

// Package modelmatrix compiles R-style model formulas into design matrices.
//
// What is in the box?
//
//	A small, pure-Go pipeline:
//		• Lexer & parser: "y ~ x1 * x2 + poly(x, 2) + (1|group)" → AST
//		• Canonicalizer: expands *, / and (x|g), hoists ar()/ma()/...
//		• Pretty-printer: AST → formula text that re-parses to the same AST
//		• Materializer: canonical AST + data → response, fixed and random tables
//
// Packages:
//
//	lexer/    tokens with line:column positions
//	ast/      expression tree, ModelSpec, structural equality
//	parser/   recursive-descent grammar, position-carrying errors
//	canon/    canonical normal form (pure, total, idempotent)
//	pretty/   round-tripping printer with optional ANSI color
//	frame/    in-memory typed columns, CSV and YAML loaders
//	matrix/   dense storage, products, Gram-Schmidt, polynomial bases
//	design/   Y/X/Z materialization, contrasts, name cleaning
//	config/   YAML/TOML settings for the CLI
//	logutil/  package loggers, silent unless enabled
//
// Quick example:
//
//	data := frame.MustNew(
//		frame.FloatColumn("y", []float64{1, 2, 3}),
//		frame.StringColumn("g", []string{"a", "b", "a"}),
//	)
//	y, X, err := modelmatrix.ModelMatrix("y ~ g", data)
//	// X.Names() == ["intercept", "g_b"]
//
// The command in cmd/modelmatrix exposes parse, canon, matrix and an
// interactive repl.
package modelmatrix

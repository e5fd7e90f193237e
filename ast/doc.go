// SPDX-License-Identifier: MIT

// Package ast defines the syntax tree of a model formula.
//
// The tree is a closed sum type: Expr is implemented only by the node structs
// declared in this package (Num, Bool, Str, Var, Sum, Prod, Interaction, Nest,
// Pow, Group, Smooth, Func, Identity, Intercept, Dot). Nodes are plain values
// and are never mutated after construction; every rewrite builds new nodes.
//
// A ModelSpec bundles the main Formula (response, right-hand side, auxiliary
// response terms) with an optional family/link header, distributional
// sub-formulas (Dpar) and autocorrelation terms (Autocor).
//
// AI-Hints:
//   - Use a type switch over Expr; the default branch is unreachable for trees
//     built by the parser or the canonicalizer.
//   - Compare trees with Equal, never with ==.
//   - Resolve function names once with LookupBuiltin instead of string matching.
package ast

// SPDX-License-Identifier: MIT

package ast

// Builtin is the closed set of function names with dedicated handling.
// Names outside the set resolve to BuiltinUnknown.
type Builtin int

const (
	BuiltinUnknown Builtin = iota
	BuiltinPoly
	BuiltinIdentity
	BuiltinNeg
	BuiltinLog
	BuiltinExp
	BuiltinSqrt
	BuiltinAbs
	BuiltinScale
	BuiltinCenter

	// autocorrelation structures
	BuiltinAR
	BuiltinMA
	BuiltinARMA
	BuiltinCOSY
	BuiltinUNSTR
	BuiltinSAR
	BuiltinCAR
	BuiltinFCOR
)

var builtinByName = map[string]Builtin{
	"poly":   BuiltinPoly,
	"I":      BuiltinIdentity,
	NegName:  BuiltinNeg,
	"log":    BuiltinLog,
	"exp":    BuiltinExp,
	"sqrt":   BuiltinSqrt,
	"abs":    BuiltinAbs,
	"scale":  BuiltinScale,
	"center": BuiltinCenter,
	"ar":     BuiltinAR,
	"ma":     BuiltinMA,
	"arma":   BuiltinARMA,
	"cosy":   BuiltinCOSY,
	"unstr":  BuiltinUNSTR,
	"sar":    BuiltinSAR,
	"car":    BuiltinCAR,
	"fcor":   BuiltinFCOR,
}

// LookupBuiltin resolves a function name.
func LookupBuiltin(name string) Builtin {
	return builtinByName[name]
}

// IsAutocor reports whether b is an autocorrelation structure.
func (b Builtin) IsAutocor() bool {
	return b >= BuiltinAR && b <= BuiltinFCOR
}

// IsAutocorName reports whether name is an autocorrelation structure.
func IsAutocorName(name string) bool {
	return LookupBuiltin(name).IsAutocor()
}

// SPDX-License-Identifier: MIT

package ast

// GroupOp joins two grouping variables in a chain.
type GroupOp int

const (
	OpNone  GroupOp = iota // first link of a chain
	OpCross                // g1:g2
	OpNest                 // g1/g2
	OpSplit                // g1+g2
)

// GroupSpec is the grouping side of a random-effect term.
type GroupSpec interface {
	groupSpec()
}

// GroupLink is one grouping variable and the operator joining it to the
// previous link.
type GroupLink struct {
	Name string
	Op   GroupOp
}

// GroupChain is "g1", "g1:g2", "g1/g2" or "g1+g2" (any length).
type GroupChain struct {
	Links []GroupLink
}

// GroupFunc is a function-call grouping such as gr(g, by=x).
type GroupFunc struct {
	Name string
	Args []Expr
}

func (GroupChain) groupSpec() {}
func (GroupFunc) groupSpec()  {}

// First returns the first grouping variable of the chain.
func (c GroupChain) First() string {
	if len(c.Links) == 0 {
		return ""
	}
	return c.Links[0].Name
}

// Response is the left-hand side of a formula.
type Response interface {
	responseNode()
}

type (
	// RespVar is a single response column. An empty Name marks an RHS-only formula.
	RespVar struct{ Name string }

	// RespMulti is cbind(a, b, ...) or mvbind(a, b, ...).
	RespMulti struct{ Names []string }

	// RespSurv is Surv(time, event[, time2]). Time2 is nil when absent.
	RespSurv struct {
		Time  Expr
		Event Expr
		Time2 Expr
	}

	// RespFunc is a function-wrapped response such as log(y).
	RespFunc struct {
		Name string
		Args []Expr
	}

	// RespBinomialTrials is "successes | trials(n)".
	RespBinomialTrials struct {
		Successes Expr
		Trials    Expr
	}
)

func (RespVar) responseNode()            {}
func (RespMulti) responseNode()          {}
func (RespSurv) responseNode()           {}
func (RespFunc) responseNode()           {}
func (RespBinomialTrials) responseNode() {}

// AtermKind tags an auxiliary response term; it is also the dedup key.
type AtermKind int

const (
	AtermSe AtermKind = iota
	AtermWeights
	AtermTrials
	AtermCens
	AtermTrunc
	AtermSubset
	AtermRate
	AtermThres
	AtermDec
	AtermCat
	AtermIndex
	AtermVReal
	AtermVInt
	AtermMi
)

var atermNames = [...]string{
	AtermSe:      "se",
	AtermWeights: "weights",
	AtermTrials:  "trials",
	AtermCens:    "cens",
	AtermTrunc:   "trunc",
	AtermSubset:  "subset",
	AtermRate:    "rate",
	AtermThres:   "thres",
	AtermDec:     "dec",
	AtermCat:     "cat",
	AtermIndex:   "index",
	AtermVReal:   "vreal",
	AtermVInt:    "vint",
	AtermMi:      "mi",
}

// String returns the aterm name as written in formulas.
func (k AtermKind) String() string {
	if k >= 0 && int(k) < len(atermNames) {
		return atermNames[k]
	}
	return "aterm"
}

// LookupAterm maps an aterm name to its kind.
func LookupAterm(name string) (AtermKind, bool) {
	for k, n := range atermNames {
		if n == name {
			return AtermKind(k), true
		}
	}
	return 0, false
}

// Aterm is an auxiliary response modifier attached with "y | aterm ~ ...".
//
// Payload by kind:
//   - se, weights, trials, cens, subset, rate, dec, cat, index: Args[0].
//   - vreal, vint: Args (one or more).
//   - trunc: LB and/or UB (nil when absent).
//   - thres: GR (nil when absent).
//   - mi: no payload.
type Aterm struct {
	Kind AtermKind
	Args []Expr
	LB   Expr
	UB   Expr
	GR   Expr
}

// Formula is "lhs | aterms ~ rhs".
type Formula struct {
	LHS    Response
	RHS    Expr
	Aterms []Aterm
}

// Dpar is a distributional-parameter sub-formula such as "sigma ~ z".
type Dpar struct {
	Name string
	RHS  Expr
}

// Autocor is an autocorrelation term such as ar(p=1).
type Autocor struct {
	Name string
	Args map[string]Expr
}

// Family describes the response distribution in the header.
type Family interface {
	familyNode()
}

type (
	// FamilyBuiltin is name(args...), e.g. gaussian().
	FamilyBuiltin struct {
		Name string
		Args []Expr
	}

	// FamilyMixture is mixture(f1, f2, ...).
	FamilyMixture struct{ Families []Family }

	// FamilyCustom is custom_family("name", "dpar", ...).
	FamilyCustom struct {
		Name  string
		Dpars []string
	}
)

func (FamilyBuiltin) familyNode() {}
func (FamilyMixture) familyNode() {}
func (FamilyCustom) familyNode()  {}

// Link is the link function named in the header.
type Link struct {
	Name string
	Args []Expr
}

// ModelSpec is the unit produced by the parser and the canonicalizer.
// Family and Link are nil when the header is absent.
type ModelSpec struct {
	Family  Family
	Link    *Link
	Formula Formula
	Dpars   []Dpar
	Autocor []Autocor
}

// DparNames lists the distributional parameters accepted as "name ~ rhs".
var DparNames = []string{
	"sigma", "nu", "phi", "zi", "hu", "zoi", "coi",
	"kappa", "beta", "disc", "bs", "ndt", "bias",
}

// IsDparName reports whether name is a distributional parameter.
func IsDparName(name string) bool {
	for _, n := range DparNames {
		if n == name {
			return true
		}
	}
	return false
}

package scicalc

// ParseOption is an option for tokenizing and parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt   map[string]Func
	lenientopt struct{}
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// funcs maps names to functions. A name mapped to FuncNone is not a
	// function.
	funcs map[string]Func
	// calls is the list of names in funcs, longest first, for matching
	// names immediately followed by an open parenthesis.
	calls []string
	// lenient selects silent recovery instead of errors.
	lenient bool
	// nodefaults indicates that parse options have set all default functions.
	nodefaults bool
	// owned indicates that funcs was created for this context and may be
	// modified.
	owned bool
}

func newParsectx(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	p.finish()
	return p
}

// finish fills in default functions and computes the call prefixes.
func (p *parsectx) finish() {
	if p.funcs == nil {
		p.funcs = globalfuncs
		p.calls = globalcalls
		p.nodefaults = true
		return
	}
	if !p.nodefaults {
		// Only set default functions that aren't already set.
		for k, v := range globalfuncs {
			if _, ok := p.funcs[k]; !ok {
				p.funcs[k] = v
			}
		}
		p.nodefaults = true
	}
	if p.calls == nil {
		p.calls = callnames(p.funcs)
	}
}

// matchCall finds the longest function name that s starts with and that is
// immediately followed by an open parenthesis. If there is none, the result
// is the empty string.
func (p *parsectx) matchCall(s string) (string, Func) {
	for _, name := range p.calls {
		if len(s) > len(name) && s[len(name)] == '(' && s[:len(name)] == name {
			return name, p.funcs[name]
		}
	}
	return "", FuncNone
}

var globalcalls = callnames(globalfuncs)

// callnames lists the names of the non-identity functions in m, longest
// first.
func callnames(m map[string]Func) []string {
	names := make([]string, 0, len(m))
	for k, v := range m {
		if v != FuncNone && k != "" {
			names = append(names, k)
		}
	}
	sortnames(names)
	return names
}

// sortnames sorts names by decreasing length, then lexically, without using
// package sort because that has reflection and allocation problems.
func sortnames(names []string) {
	less := func(a, b string) bool {
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && less(names[j], names[j-1]); j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// ParseFunc makes name an alias of a function. To disable parsing a name,
// including a default one, pass FuncNone for fn.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p parsectx) parsectx {
	p.ownfuncs(1)
	p.funcs[o.name] = o.fn
	p.calls = nil
	return p
}

// ParseFuncs sets a group of function names for parsing. To disable parsing
// any name, map it to FuncNone.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	p.ownfuncs(len(o))
	for k, v := range o {
		p.funcs[k] = v
	}
	p.calls = nil
	return p
}

// ownfuncs ensures that the parse context's function map may be modified,
// copying any map it shares with a preset.
func (p *parsectx) ownfuncs(n int) {
	if p.owned {
		return
	}
	m := make(map[string]Func, len(p.funcs)+n)
	for k, v := range p.funcs {
		m[k] = v
	}
	p.funcs = m
	p.owned = true
}

// DisableDefaultFuncs disables all default function names. Only names given
// with ParseFunc or ParseFuncs are recognized.
func DisableDefaultFuncs() ParseOption {
	return disablefns
}

var disablefns = func() funcsopt {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = FuncNone
	}
	return m
}()

// Lenient selects silent recovery from malformed input instead
// of errors: unrecognized characters are skipped, unknown names are applied
// as the identity, unmatched parentheses are ignored, a factorial outside
// its domain is NaN, and leftover operands are discarded.
func Lenient() ParseOption {
	return lenientopt{}
}

func (lenientopt) parseOption(p parsectx) parsectx {
	p.lenient = true
	return p
}

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same non-default parsing options for many calls to Parse. A preset
// panics if it is applied after ParseFunc, ParseFuncs, or DisableDefaultFuncs.
// Lenient may come before it, and any option may come after it.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := newParsectx(opts)
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.funcs != nil {
		panic("scicalc: preset applied to non-default parse config")
	}
	p.funcs = o.funcs
	p.calls = o.calls
	p.nodefaults = o.nodefaults
	p.owned = false
	p.lenient = p.lenient || o.lenient
	return p
}

package eel

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the options in effect for one parse.
type parsectx struct {
	// quirks holds the parse-time compatibility quirks.
	quirks Quirks
}

// ParsingPreset combines several parse options into one, which may be more
// convenient when the same options are used for many calls to Parse.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		if opt != nil {
			p = opt.parseOption(p)
		}
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	p.quirks |= o.quirks
	return p
}

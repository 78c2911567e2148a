package capability

// Probe answers which tier the current device supports. Implementations must
// not fail: when the query is unavailable they return TierNone.
type Probe interface {
	QueryTier() Tier
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc func() Tier

func (f ProbeFunc) QueryTier() Tier {
	if f == nil {
		return TierNone
	}
	return f()
}

// Static returns a probe that always reports t.
func Static(t Tier) Probe {
	return ProbeFunc(func() Tier { return t })
}

// Override returns a probe that reports t instead of querying p, unless t is
// TierNone in which case p is used unchanged.
func Override(p Probe, t Tier) Probe {
	if t == TierNone {
		return p
	}
	return Static(t)
}

// Query runs p, treating a nil probe as an unavailable query.
func Query(p Probe) Tier {
	if p == nil {
		return TierNone
	}
	return p.QueryTier()
}

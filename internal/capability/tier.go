package capability

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is a graphics context version encoded as major<<16 | minor.
// Only ordering comparisons against a required minimum are meaningful.
type Tier uint32

const (
	TierNone Tier = 0
	TierES1  Tier = 0x10000
	TierES2  Tier = 0x20000
	TierES3  Tier = 0x30000
	TierES31 Tier = 0x30001
	TierES32 Tier = 0x30002
)

// MinimumTier is the lowest tier a host will render on.
const MinimumTier = TierES2

// NewTier builds a tier from a context major/minor version.
func NewTier(major, minor int) Tier {
	if major < 0 || minor < 0 {
		return TierNone
	}
	return Tier(uint32(major)<<16 | uint32(minor)&0xffff)
}

func (t Tier) Major() int { return int(uint32(t) >> 16) }
func (t Tier) Minor() int { return int(uint32(t) & 0xffff) }

func (t Tier) String() string {
	if t == TierNone {
		return "none"
	}
	return fmt.Sprintf("ES %d.%d", t.Major(), t.Minor())
}

// MeetsMinimum reports whether tier is at least required.
func MeetsMinimum(tier, required Tier) bool {
	return tier >= required
}

// ParseTier accepts "2.0", "2", "ES 3.1", "0x20000" or a plain decimal
// encoding such as "131072".
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "ES"), "es")
	s = strings.TrimSpace(s)
	if s == "" {
		return TierNone, fmt.Errorf("empty tier")
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return TierNone, fmt.Errorf("invalid tier %q: %w", s, err)
		}
		return Tier(v), nil
	}

	if major, minor, ok := strings.Cut(s, "."); ok {
		ma, err := strconv.Atoi(major)
		if err != nil {
			return TierNone, fmt.Errorf("invalid tier %q: %w", s, err)
		}
		mi, err := strconv.Atoi(minor)
		if err != nil {
			return TierNone, fmt.Errorf("invalid tier %q: %w", s, err)
		}
		if ma < 0 || mi < 0 || mi > 0xffff {
			return TierNone, fmt.Errorf("invalid tier %q", s)
		}
		return NewTier(ma, mi), nil
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return TierNone, fmt.Errorf("invalid tier %q: %w", s, err)
	}
	// Small values are a bare major version, large ones already encoded.
	if v < 1<<16 {
		return NewTier(int(v), 0), nil
	}
	return Tier(v), nil
}

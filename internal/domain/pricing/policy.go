// Package pricing implements the delivery pricing policy: a fixed allow-list
// of named service areas and two flat fee tiers.
package pricing

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
)

// Zone labels a delivery address as inside or outside the service core.
type Zone string

const (
	// ZoneInside covers addresses matching the service area list.
	ZoneInside Zone = "Inside Dhaka"
	// ZoneOutside covers everything else.
	ZoneOutside Zone = "Outside Dhaka"
)

// String returns the human-facing zone label.
func (z Zone) String() string {
	return string(z)
}

// ParseZone converts a declared zone label to a Zone. The boolean reports
// whether the label named a known zone.
func ParseZone(s string) (Zone, bool) {
	switch Zone(s) {
	case ZoneInside:
		return ZoneInside, true
	case ZoneOutside:
		return ZoneOutside, true
	default:
		return "", false
	}
}

// defaultAreas is the built-in service core: central Dhaka neighborhoods.
// Matching is a case-insensitive substring test against the free-text
// address.
var defaultAreas = []string{
	"dhaka",
	"gulshan",
	"banani",
	"baridhara",
	"dhanmondi",
	"mohammadpur",
	"mirpur",
	"uttara",
	"bashundhara",
	"motijheel",
	"badda",
	"khilgaon",
	"tejgaon",
	"farmgate",
}

// Policy classifies addresses and quotes delivery fees.
type Policy struct {
	areas      []string
	insideFee  float64
	outsideFee float64
}

// NewPolicy builds a policy from an explicit area list and fee pair. An empty
// area list falls back to the built-in service core.
func NewPolicy(areas []string, insideFee, outsideFee float64) *Policy {
	if len(areas) == 0 {
		areas = defaultAreas
	}
	lowered := make([]string, 0, len(areas))
	for _, area := range areas {
		area = strings.ToLower(strings.TrimSpace(area))
		if area != "" {
			lowered = append(lowered, area)
		}
	}

	return &Policy{
		areas:      lowered,
		insideFee:  insideFee,
		outsideFee: outsideFee,
	}
}

// DefaultPolicy returns the policy with the built-in area list and the
// standard 60/100 fee tiers.
func DefaultPolicy() *Policy {
	return NewPolicy(nil, 60, 100)
}

// Classify derives the zone for a free-text address.
func (p *Policy) Classify(address string) Zone {
	needle := strings.ToLower(address)
	for _, area := range p.areas {
		if strings.Contains(needle, area) {
			return ZoneInside
		}
	}

	return ZoneOutside
}

// Fee returns the flat delivery charge for a zone.
func (p *Policy) Fee(zone Zone) float64 {
	if zone == ZoneInside {
		return p.insideFee
	}

	return p.outsideFee
}

// Fees returns both fee tiers, inside first, for display on checkout pages.
func (p *Policy) Fees() (float64, float64) {
	return p.insideFee, p.outsideFee
}

// Validate checks a user-declared zone against the address-derived
// classification. A disagreement means a cheaper fee was selected for a
// remote address (or vice versa) and fails the order.
func (p *Policy) Validate(address string, declared Zone) error {
	if derived := p.Classify(address); derived != declared {
		return domainerrors.ErrZoneMismatch.WrapMessage(
			"address classifies as " + derived.String())
	}

	return nil
}

package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the edge length of one region in world units. Must stay a power of two.
const Size = 1 << shift

const (
	shift    = 6
	truncate = Size - 1
	yMask    = 0xFF // y index occupies the low byte of an ID
)

// ID identifies one 64x64 region cell.
type ID int32

// Truncate floors a world coordinate to the origin of its region.
// Negative coordinates round toward negative infinity (-1 -> -64).
func Truncate(c int) int {
	return c &^ truncate
}

// IDOf returns the region id containing world point (x, y).
func IDOf(x, y int) ID {
	return ID(((x >> shift) << 8) | ((y >> shift) & yMask))
}

// Origin returns the world origin of the region. The y component is only
// recoverable modulo 256 regions, which covers every on-map region.
func (id ID) Origin() (x, y int) {
	x = int(id>>8) << shift
	y = int(id&yMask) << shift
	return x, y
}

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// ParseIDList parses a comma separated list of region ids ("12850, 12851").
// Blank entries are skipped.
func ParseIDList(s string) ([]ID, error) {
	var out []ID
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("region id %q: %w", field, err)
		}
		out = append(out, ID(n))
	}
	return out, nil
}

// FormatIDList is the inverse of ParseIDList.
func FormatIDList(ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

// --- Classification ---

// Classification is the lock state of a region.
type Classification int

const (
	Unclassified Classification = iota
	Locked
	Unlockable
	Blacklisted
)

func (c Classification) String() string {
	switch c {
	case Unclassified:
		return "unclassified"
	case Locked:
		return "locked"
	case Unlockable:
		return "unlockable"
	case Blacklisted:
		return "blacklisted"
	default:
		return "unknown"
	}
}

// ParseClassification is the inverse of Classification.String.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unclassified":
		return Unclassified, nil
	case "locked":
		return Locked, nil
	case "unlockable":
		return Unlockable, nil
	case "blacklisted":
		return Blacklisted, nil
	}
	return Unclassified, fmt.Errorf("unknown classification %q", s)
}

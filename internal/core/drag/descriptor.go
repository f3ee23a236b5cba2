// Package drag contains the pure decision engine for drag-reorder gestures.
// It turns an active/over identifier pair and a layout snapshot into a plan of
// store mutations without performing any I/O.
package drag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Role is the container role of a drag source or drop target.
type Role int

const (
	RoleUnknown Role = iota
	RolePinnedItem
	RoleCompactPinnedItem
	RoleFreeItem
	RoleGroupedItem
	RoleGroup
	RolePinnedSeparator
	RoleGroupSeparator
	RoleEndSeparator
)

// Pinned separator ordinals.
const (
	PinnedSeparatorTop    = 1
	PinnedSeparatorBottom = 2
)

var (
	// ErrMalformedDescriptor is returned for identifiers that are not <tag>:<int>.
	ErrMalformedDescriptor = errors.New("malformed drag identifier")
	// ErrUnknownRole is returned for identifiers with an unrecognised tag.
	ErrUnknownRole = errors.New("unknown drag role")
)

var roleTags = map[Role]string{
	RolePinnedItem:        "pinned",
	RoleCompactPinnedItem: "compact",
	RoleFreeItem:          "tab",
	RoleGroupedItem:       "grouped",
	RoleGroup:             "group",
	RolePinnedSeparator:   "pinned-separator",
	RoleGroupSeparator:    "group-separator",
	RoleEndSeparator:      "end-separator",
}

var tagRoles = func() map[string]Role {
	m := make(map[string]Role, len(roleTags))
	for role, tag := range roleTags {
		m[tag] = role
	}
	return m
}()

// String returns the wire tag of the role.
func (r Role) String() string {
	if tag, ok := roleTags[r]; ok {
		return tag
	}
	return "unknown"
}

// IsItem reports whether the role refers to a single item.
func (r Role) IsItem() bool {
	switch r {
	case RolePinnedItem, RoleCompactPinnedItem, RoleFreeItem, RoleGroupedItem:
		return true
	}
	return false
}

// IsPinned reports whether the role is one of the pinned item views.
func (r Role) IsPinned() bool {
	return r == RolePinnedItem || r == RoleCompactPinnedItem
}

// IsSentinel reports whether the role is a separator that only exists as a drop target.
func (r Role) IsSentinel() bool {
	return r == RolePinnedSeparator || r == RoleGroupSeparator || r == RoleEndSeparator
}

// Descriptor is the parsed form of a drag identifier.
type Descriptor struct {
	Role Role
	ID   int
}

// String returns the wire form, e.g. "grouped:21".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s:%d", d.Role, d.ID)
}

// IsZero reports whether the descriptor is empty.
func (d Descriptor) IsZero() bool {
	return d.Role == RoleUnknown
}

// ParseDescriptor parses a "<tag>:<int>" identifier.
func ParseDescriptor(s string) (Descriptor, error) {
	tag, rawID, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || tag == "" || rawID == "" {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrMalformedDescriptor, s)
	}
	role, known := tagRoles[tag]
	if !known {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownRole, tag)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil || id < 0 {
		return Descriptor{}, fmt.Errorf("%w: %q has a non-numeric id", ErrMalformedDescriptor, s)
	}
	if role == RolePinnedSeparator && id != PinnedSeparatorTop && id != PinnedSeparatorBottom {
		return Descriptor{}, fmt.Errorf("%w: pinned separator ordinal %d", ErrMalformedDescriptor, id)
	}
	return Descriptor{Role: role, ID: id}, nil
}

// MustParse is ParseDescriptor for literals known to be valid.
func MustParse(s string) Descriptor {
	d, err := ParseDescriptor(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ItemDescriptor builds the descriptor of an item from its membership.
func ItemDescriptor(it Item) Descriptor {
	switch {
	case it.Pinned:
		return Descriptor{Role: RolePinnedItem, ID: it.ID}
	case it.Grouped():
		return Descriptor{Role: RoleGroupedItem, ID: it.ID}
	default:
		return Descriptor{Role: RoleFreeItem, ID: it.ID}
	}
}

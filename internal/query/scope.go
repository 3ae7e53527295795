package query

import (
	"github.com/google/uuid"
)

// ScopeKind selects which recipe collection a request targets.
type ScopeKind int

const (
	ScopeWall ScopeKind = iota
	ScopeOwner
	ScopeCategory
	ScopeIngredient
	ScopeIngredients
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeWall:
		return "wall"
	case ScopeOwner:
		return "owner"
	case ScopeCategory:
		return "category"
	case ScopeIngredient:
		return "ingredient"
	case ScopeIngredients:
		return "ingredients"
	default:
		return "unknown"
	}
}

// Scope is a tagged variant. Only the fields relevant to Kind are read.
type Scope struct {
	Kind ScopeKind

	// Wall, Category, Ingredient, Ingredients
	ExcludeMine bool

	// Owner
	TargetUserID   uuid.UUID
	IncludePublic  bool
	IncludePrivate bool

	// Category, Ingredient (one name) and Ingredients (all must match)
	Names []string
}

func Wall(excludeMine bool) Scope {
	return Scope{Kind: ScopeWall, ExcludeMine: excludeMine}
}

func Owner(target uuid.UUID, includePublic, includePrivate bool) Scope {
	return Scope{Kind: ScopeOwner, TargetUserID: target, IncludePublic: includePublic, IncludePrivate: includePrivate}
}

func Category(name string, excludeMine bool) Scope {
	return Scope{Kind: ScopeCategory, Names: []string{name}, ExcludeMine: excludeMine}
}

func Ingredient(name string, excludeMine bool) Scope {
	return Scope{Kind: ScopeIngredient, Names: []string{name}, ExcludeMine: excludeMine}
}

func Ingredients(names []string, excludeMine bool) Scope {
	return Scope{Kind: ScopeIngredients, Names: names, ExcludeMine: excludeMine}
}

// NeedsTagLookup reports whether names must be resolved to ids before a
// predicate can be built.
func (s Scope) NeedsTagLookup() bool {
	return s.Kind == ScopeCategory || s.Kind == ScopeIngredient || s.Kind == ScopeIngredients
}

// Visibility is the resolved access level to one owner's recipes.
type Visibility int

const (
	VisibilityNone Visibility = iota
	VisibilityOwnerAll
	VisibilityOwnerPublicOnly
	VisibilityOwnerPrivateOnly
)

// ResolveOwnerVisibility applies the owner decision table. includePrivate is
// honoured only when the requester is the target; other users never see
// private rows.
func ResolveOwnerVisibility(requester, target uuid.UUID, includePublic, includePrivate bool) Visibility {
	if requester == target {
		switch {
		case includePublic == includePrivate:
			return VisibilityOwnerAll
		case includePublic:
			return VisibilityOwnerPublicOnly
		default:
			return VisibilityOwnerPrivateOnly
		}
	}
	if includePublic {
		return VisibilityOwnerPublicOnly
	}
	return VisibilityNone
}

// CanView is the single-entity visibility check shared by recipe and review
// operations.
func CanView(isPublic bool, owner, requester uuid.UUID) bool {
	return isPublic || owner == requester
}

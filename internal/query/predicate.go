package query

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNothingVisible means the scope grants the requester no rows at all.
var ErrNothingVisible = errors.New("no visible recipes")

// Predicate is the storage-neutral recipe filter. Nil fields do not
// constrain. The same value drives both the page query and the count.
type Predicate struct {
	Public         *bool
	OwnerID        *uuid.UUID
	ExcludeOwnerID *uuid.UUID
	CategoryID     *uuid.UUID
	IngredientIDs  []uuid.UUID
}

// TagIDs are the resolved ids of a scope's names, in the order of Scope.Names.
type TagIDs []uuid.UUID

// Build turns a scope into a predicate for requester. Tag scopes must pass
// ids resolved from Scope.Names.
func Build(s Scope, requester uuid.UUID, tags TagIDs) (Predicate, error) {
	var p Predicate

	switch s.Kind {
	case ScopeOwner:
		owner := s.TargetUserID
		p.OwnerID = &owner
		switch ResolveOwnerVisibility(requester, s.TargetUserID, s.IncludePublic, s.IncludePrivate) {
		case VisibilityOwnerAll:
		case VisibilityOwnerPublicOnly:
			p.Public = boolPtr(true)
		case VisibilityOwnerPrivateOnly:
			p.Public = boolPtr(false)
		default:
			return Predicate{}, ErrNothingVisible
		}
		return p, nil

	case ScopeWall:

	case ScopeCategory:
		if len(tags) != 1 {
			return Predicate{}, errors.New("category scope needs exactly one id")
		}
		id := tags[0]
		p.CategoryID = &id

	case ScopeIngredient, ScopeIngredients:
		if len(tags) == 0 {
			return Predicate{}, errors.New("ingredient scope needs at least one id")
		}
		p.IngredientIDs = append([]uuid.UUID(nil), tags...)

	default:
		return Predicate{}, errors.New("unknown scope")
	}

	p.Public = boolPtr(true)
	if s.ExcludeMine {
		me := requester
		p.ExcludeOwnerID = &me
	}
	return p, nil
}

// RecipeFacts is the subset of a recipe a predicate inspects.
type RecipeFacts struct {
	OwnerID       uuid.UUID
	IsPublic      bool
	CategoryIDs   []uuid.UUID
	IngredientIDs []uuid.UUID
}

// Matches evaluates p in memory. Storage implementations must agree with it.
func (p Predicate) Matches(r RecipeFacts) bool {
	if p.Public != nil && r.IsPublic != *p.Public {
		return false
	}
	if p.OwnerID != nil && r.OwnerID != *p.OwnerID {
		return false
	}
	if p.ExcludeOwnerID != nil && r.OwnerID == *p.ExcludeOwnerID {
		return false
	}
	if p.CategoryID != nil && !contains(r.CategoryIDs, *p.CategoryID) {
		return false
	}
	for _, id := range p.IngredientIDs {
		if !contains(r.IngredientIDs, id) {
			return false
		}
	}
	return true
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool { return &b }

// ReviewPredicate selects the reviews of one recipe, optionally leaving out
// one author (the requester, whose review is returned separately).
type ReviewPredicate struct {
	RecipeID      uuid.UUID
	ExcludeUserID *uuid.UUID
}

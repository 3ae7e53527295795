package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOwnerVisibility(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	other := uuid.New()

	tests := []struct {
		name           string
		target         uuid.UUID
		includePublic  bool
		includePrivate bool
		want           Visibility
	}{
		{"self default", me, false, false, VisibilityOwnerAll},
		{"self both", me, true, true, VisibilityOwnerAll},
		{"self public only", me, true, false, VisibilityOwnerPublicOnly},
		{"self private only", me, false, true, VisibilityOwnerPrivateOnly},
		{"other public", other, true, false, VisibilityOwnerPublicOnly},
		{"other public and private", other, true, true, VisibilityOwnerPublicOnly},
		{"other nothing", other, false, false, VisibilityNone},
		{"other private only", other, false, true, VisibilityNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveOwnerVisibility(me, tt.target, tt.includePublic, tt.includePrivate), tt.name)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	other := uuid.New()
	cat := uuid.New()
	ing1, ing2 := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		scope   Scope
		tags    TagIDs
		want    Predicate
		wantErr error
	}{
		{
			name:  "wall",
			scope: Wall(false),
			want:  Predicate{Public: boolPtr(true)},
		},
		{
			name:  "wall excluding mine",
			scope: Wall(true),
			want:  Predicate{Public: boolPtr(true), ExcludeOwnerID: &me},
		},
		{
			name:  "own recipes",
			scope: Owner(me, false, false),
			want:  Predicate{OwnerID: &me},
		},
		{
			name:  "own private recipes",
			scope: Owner(me, false, true),
			want:  Predicate{OwnerID: &me, Public: boolPtr(false)},
		},
		{
			name:  "other user public",
			scope: Owner(other, true, true),
			want:  Predicate{OwnerID: &other, Public: boolPtr(true)},
		},
		{
			name:    "other user nothing requested",
			scope:   Owner(other, false, true),
			wantErr: ErrNothingVisible,
		},
		{
			name:  "category",
			scope: Category("soup", true),
			tags:  TagIDs{cat},
			want:  Predicate{Public: boolPtr(true), ExcludeOwnerID: &me, CategoryID: &cat},
		},
		{
			name:  "ingredients",
			scope: Ingredients([]string{"egg", "milk"}, false),
			tags:  TagIDs{ing1, ing2},
			want:  Predicate{Public: boolPtr(true), IngredientIDs: []uuid.UUID{ing1, ing2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.scope, me, tt.tags)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildRejectsMissingTags(t *testing.T) {
	t.Parallel()

	_, err := Build(Category("soup", false), uuid.New(), nil)
	assert.Error(t, err)

	_, err = Build(Ingredient("egg", false), uuid.New(), nil)
	assert.Error(t, err)
}

// Cross-user private rows stay hidden whatever flags the requester sends.
func TestPredicateNeverExposesOthersPrivateRecipes(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	other := uuid.New()
	private := RecipeFacts{OwnerID: other, IsPublic: false}

	scopes := []Scope{
		Wall(false),
		Wall(true),
		Owner(other, true, true),
		Owner(other, true, false),
		Owner(other, false, true),
		Owner(other, false, false),
	}

	for _, s := range scopes {
		p, err := Build(s, me, nil)
		if err != nil {
			assert.ErrorIs(t, err, ErrNothingVisible)
			continue
		}
		assert.False(t, p.Matches(private), "scope %s leaked a private recipe", s.Kind)
	}
}

func TestPredicateMatches(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	cat := uuid.New()
	egg, milk := uuid.New(), uuid.New()

	p := Predicate{Public: boolPtr(true), ExcludeOwnerID: &me, CategoryID: &cat, IngredientIDs: []uuid.UUID{egg, milk}}

	match := RecipeFacts{OwnerID: uuid.New(), IsPublic: true, CategoryIDs: []uuid.UUID{cat}, IngredientIDs: []uuid.UUID{milk, egg}}
	assert.True(t, p.Matches(match))

	mine := match
	mine.OwnerID = me
	assert.False(t, p.Matches(mine))

	partial := match
	partial.IngredientIDs = []uuid.UUID{egg}
	assert.False(t, p.Matches(partial))

	noCat := match
	noCat.CategoryIDs = nil
	assert.False(t, p.Matches(noCat))
}

func TestCanView(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, CanView(true, owner, stranger))
	assert.True(t, CanView(false, owner, owner))
	assert.False(t, CanView(false, owner, stranger))
}

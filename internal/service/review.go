package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/query"
	"github.com/pageza/cookbook/backend/internal/repository"
)

// ReviewInput is the writable part of a review. Stars may be fractional and
// are rounded to the nearest integer.
type ReviewInput struct {
	Stars   float64
	Comment string
}

// ReviewService handles review operations
type ReviewService struct {
	reviews repository.ReviewRepository
	recipes repository.RecipeRepository
	limits  config.Limits
	log     *slog.Logger
}

var _ IReviewService = (*ReviewService)(nil)

func NewReviewService(reviews repository.ReviewRepository, recipes repository.RecipeRepository, limits config.Limits, log *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		recipes: recipes,
		limits:  limits,
		log:     log,
	}
}

// visibleRecipe loads a recipe the requester may see. Missing and hidden
// recipes both produce notFoundMsg.
func (s *ReviewService) visibleRecipe(ctx context.Context, requester, recipeID uuid.UUID, notFoundMsg string) (*model.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, classify(s.log, "get_recipe", err, notFoundMsg)
	}
	if !query.CanView(recipe.IsPublic, recipe.UserID, requester) {
		return nil, notFound(notFoundMsg)
	}
	return recipe, nil
}

// ListReviews returns a page of the reviews of a visible recipe, excluding
// the requester's own review, which is returned as CurrentUserReview.
func (s *ReviewService) ListReviews(ctx context.Context, requester, recipeID uuid.UUID, raw query.RawPage) (*ReviewPage, error) {
	page, err := query.Normalize(raw, s.limits.Pagination)
	if err != nil {
		return nil, invalidInput(err.Error())
	}

	if _, err := s.visibleRecipe(ctx, requester, recipeID, fmt.Sprintf("Recipe with ID of %s not found.", recipeID)); err != nil {
		return nil, err
	}

	pred := query.ReviewPredicate{RecipeID: recipeID, ExcludeUserID: &requester}

	var (
		reviews []model.Review
		total   int64
		own     *model.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.FindReviews(gctx, pred, page.StartIndex, page.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.reviews.CountReviews(gctx, pred)
		return err
	})
	g.Go(func() error {
		r, err := s.reviews.FindUserReview(gctx, recipeID, requester)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		own = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storageFailure(s.log, "find_reviews", err)
	}

	window, ok := query.Arbitrate(page, total)
	result := &ReviewPage{
		Page:         window.Page,
		Limit:        window.Limit,
		TotalReviews: window.Total,
		TotalPages:   window.TotalPages,
		Reviews:      []ReviewView{},
	}
	if own != nil {
		v := newReviewView(*own)
		result.CurrentUserReview = &v
	}
	if !ok {
		metrics.PaginationOverrunsTotal.WithLabelValues("reviews").Inc()
		return result, noMorePages()
	}

	for _, r := range reviews {
		result.Reviews = append(result.Reviews, newReviewView(r))
	}
	return result, nil
}

// GetStars returns the star aggregate of a visible recipe.
func (s *ReviewService) GetStars(ctx context.Context, requester, recipeID uuid.UUID) (model.StarAggregate, error) {
	if _, err := s.visibleRecipe(ctx, requester, recipeID, fmt.Sprintf("Recipe with ID of %s not found.", recipeID)); err != nil {
		return model.StarAggregate{}, err
	}
	agg, err := s.reviews.GetStarAggregate(ctx, recipeID)
	if err != nil {
		return model.StarAggregate{}, storageFailure(s.log, "get_stars", err)
	}
	return agg, nil
}

// CreateReview adds the requester's review of a public recipe of another
// user. Owners cannot review their own recipes and each user reviews a
// recipe at most once.
func (s *ReviewService) CreateReview(ctx context.Context, requester, recipeID uuid.UUID, in ReviewInput) (*ReviewView, error) {
	stars, comment, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}

	recipe, err := s.visibleRecipe(ctx, requester, recipeID, fmt.Sprintf("Recipe with ID = %s does not exists", recipeID))
	if err != nil {
		return nil, err
	}
	if recipe.UserID == requester {
		return nil, conflict("You cannot review your own recipe")
	}

	_, err = s.reviews.FindUserReview(ctx, recipeID, requester)
	switch {
	case err == nil:
		return nil, conflict("You have already reviewed this recipe")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storageFailure(s.log, "find_review", err)
	}

	review := &model.Review{
		Stars:    stars,
		Comment:  comment,
		RecipeID: recipeID,
		UserID:   requester,
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("You have already reviewed this recipe")
		}
		return nil, storageFailure(s.log, "create_review", err)
	}
	metrics.ReviewsCreatedTotal.Inc()

	return s.reload(ctx, review.ID)
}

// UpdateReview changes the stars and comment of the requester's review.
func (s *ReviewService) UpdateReview(ctx context.Context, requester, reviewID uuid.UUID, in ReviewInput) (*ReviewView, error) {
	stars, comment, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}

	review, err := s.ownedReview(ctx, requester, reviewID)
	if err != nil {
		return nil, err
	}

	review.Stars = stars
	review.Comment = comment
	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return nil, classify(s.log, "update_review", err, reviewNotFoundMsg(reviewID))
	}
	return s.reload(ctx, reviewID)
}

// DeleteReview removes the requester's review.
func (s *ReviewService) DeleteReview(ctx context.Context, requester, reviewID uuid.UUID) error {
	if _, err := s.ownedReview(ctx, requester, reviewID); err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return classify(s.log, "delete_review", err, reviewNotFoundMsg(reviewID))
	}
	return nil
}

func reviewNotFoundMsg(id uuid.UUID) string {
	return fmt.Sprintf("Review with ID = %s does not exist", id)
}

// ownedReview loads a review written by requester. Reviews of other users
// are reported as not found.
func (s *ReviewService) ownedReview(ctx context.Context, requester, reviewID uuid.UUID) (*model.Review, error) {
	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, classify(s.log, "get_review", err, reviewNotFoundMsg(reviewID))
	}
	if review.UserID != requester {
		return nil, notFound(reviewNotFoundMsg(reviewID))
	}
	return review, nil
}

func (s *ReviewService) reload(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	review, err := s.reviews.GetReviewByID(ctx, id)
	if err != nil {
		return nil, storageFailure(s.log, "get_review", err)
	}
	v := newReviewView(*review)
	return &v, nil
}

func (s *ReviewService) checkInput(in ReviewInput) (int, string, error) {
	l := s.limits.Review

	if math.IsNaN(in.Stars) || math.IsInf(in.Stars, 0) {
		return 0, "", invalidInput("number of stars is required")
	}
	if in.Stars < float64(l.MinStars) {
		return 0, "", invalidInput(fmt.Sprintf("minimum number of stars is %d", l.MinStars))
	}
	if in.Stars > float64(l.MaxStars) {
		return 0, "", invalidInput(fmt.Sprintf("maximum number of stars is %d", l.MaxStars))
	}
	stars := int(math.Round(in.Stars))

	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > l.CommentMaxLength {
		return 0, "", invalidInput(fmt.Sprintf("comment must be shorter than %d characters", l.CommentMaxLength))
	}
	return stars, comment, nil
}

package recommendation

import (
	"context"
	"fmt"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"sort"
	"time"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAllExcept(ctx context.Context, id uint64) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Product, error)
}

type CategoryRepository interface {
	MembersOfCategoryContaining(ctx context.Context, productID uint64) ([]uint64, error)
}

type WishlistRepository interface {
	ProductIDsByUser(ctx context.Context, userID uint64) ([]uint64, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, view *domain.BrowsingHistory) error
	ExistsSince(ctx context.Context, userID, productID uint64, since time.Time) (bool, error)
	FindRecent(ctx context.Context, userID uint64, since time.Time, limit int) ([]domain.BrowsingHistory, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	DeleteOldest(ctx context.Context, userID uint64, n int) error
}

// ResultCache fronts Recommend with a short-TTL cache. Optional: a nil
// cache disables it.
type ResultCache interface {
	Get(ctx context.Context, productID, userID uint64, limit int) ([]domain.Product, error)
	Set(ctx context.Context, productID, userID uint64, limit int, products []domain.Product) error
}

// ---- Usecase / Service ----

type RecommendationService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	wishlistRepo WishlistRepository
	historyRepo  HistoryRepository
	cache        ResultCache
	now          func() time.Time
}

func NewRecommendationService(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	wishlistRepo WishlistRepository,
	historyRepo HistoryRepository,
	cache ResultCache,
) *RecommendationService {
	return &RecommendationService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		wishlistRepo: wishlistRepo,
		historyRepo:  historyRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Recommend returns the top products related to the reference product,
// personalized when userID is non-zero. The reference must exist;
// anything else is best effort.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	productID uint64,
	userID uint64,
	limit int,
) ([]domain.Product, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	reference, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, productID, userID, limit); err == nil {
			return cached, nil
		}
	}

	// Reverse lookup: the category whose member list contains the
	// reference defines "same category" for every candidate.
	memberIDs, err := s.categoryRepo.MembersOfCategoryContaining(ctx, reference.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve reference category: %w", err)
	}
	categorySet := make(map[uint64]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		categorySet[id] = struct{}{}
	}

	candidates, err := s.productRepo.FindAllExcept(ctx, reference.ID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	var signals *userSignals
	if userID != 0 {
		signals, err = s.loadUserSignals(ctx, userID, reference, categorySet)
		if err != nil {
			// Personalization is additive; serve unpersonalized rather
			// than fail the request.
			logger.Warn("failed to load personalization signals", "user_id", userID, "error", err)
			signals = nil
		}
	}

	type scored struct {
		product domain.Product
		score   int
	}

	scoredList := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		scoredList = append(scoredList, scored{
			product: candidate,
			score:   scoreCandidate(reference, candidate, categorySet, signals),
		})
	}

	// Stable sort keeps equal scores in catalog iteration order, which
	// is the documented tie-break.
	sort.SliceStable(scoredList, func(i, j int) bool {
		return scoredList[i].score > scoredList[j].score
	})

	if limit > len(scoredList) {
		limit = len(scoredList)
	}

	out := make([]domain.Product, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, scoredList[i].product)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, productID, userID, limit, out); err != nil {
			logger.Warn("failed to cache recommendations", "product_id", productID, "error", err)
		}
	}

	return out, nil
}

// loadUserSignals gathers everything personalization needs in three
// reads, instead of per-candidate lookups.
func (s *RecommendationService) loadUserSignals(
	ctx context.Context,
	userID uint64,
	reference domain.Product,
	categorySet map[uint64]struct{},
) (*userSignals, error) {

	wishlistIDs, err := s.wishlistRepo.ProductIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	wishlisted := make(map[uint64]struct{}, len(wishlistIDs))
	for _, id := range wishlistIDs {
		wishlisted[id] = struct{}{}
	}

	since := s.now().Add(-recentViewWindow)
	views, err := s.historyRepo.FindRecent(ctx, userID, since, recentViewLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent views: %w", err)
	}

	signals := &userSignals{wishlisted: wishlisted}
	if len(views) == 0 {
		return signals, nil
	}

	viewedIDs := make([]uint64, 0, len(views))
	for _, v := range views {
		viewedIDs = append(viewedIDs, v.ProductID)
	}
	viewedProducts, err := s.productRepo.FindByIDs(ctx, viewedIDs)
	if err != nil {
		return nil, fmt.Errorf("load viewed products: %w", err)
	}

	for _, v := range views {
		if _, ok := categorySet[v.ProductID]; ok {
			signals.viewedReferenceCategory = true
		}
		if p, ok := viewedProducts[v.ProductID]; ok && p.Brand == reference.Brand {
			signals.viewedReferenceBrand = true
		}
	}

	return signals, nil
}

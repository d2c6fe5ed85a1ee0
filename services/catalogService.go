package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/shopspring/decimal"
)

var (
	slugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	maxItemPrice = decimal.New(999999, -2)
)

type CatalogService struct {
	Catalog *repository.CatalogRepository
	// Images is nil when no bucket is configured.
	Images ImageStore
	Now    func() time.Time
}

func NewCatalogService(catalog *repository.CatalogRepository, images ImageStore) *CatalogService {
	return &CatalogService{Catalog: catalog, Images: images, Now: time.Now}
}

func (s *CatalogService) ListCategories(ctx context.Context, p Principal, q repository.CategoryQuery) ([]models.Category, error) {
	if err := p.decide(policy.List, policy.Category).Err(); err != nil {
		return nil, err
	}
	return s.Catalog.ListCategories(ctx, q)
}

func (s *CatalogService) CreateCategory(ctx context.Context, p Principal, in models.Category) (*models.Category, error) {
	if err := p.decide(policy.Create, policy.Category).Err(); err != nil {
		return nil, err
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, apperr.Invalid("slug", "enter a valid slug consisting of letters, numbers, underscores or hyphens")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Invalid("title", "this field may not be blank")
	}

	c := &models.Category{Slug: in.Slug, Title: in.Title}
	if err := s.Catalog.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, p Principal, id uint) error {
	if err := p.decide(policy.Delete, policy.Category).Err(); err != nil {
		return err
	}
	return s.Catalog.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListMenuItems(ctx context.Context, p Principal, q repository.MenuItemQuery) ([]models.MenuItem, int64, error) {
	if err := p.decide(policy.List, policy.MenuItem).Err(); err != nil {
		return nil, 0, err
	}
	return s.Catalog.ListMenuItems(ctx, q)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, p Principal, id uint) (*models.MenuItem, error) {
	if err := p.decide(policy.Read, policy.MenuItem).Err(); err != nil {
		return nil, err
	}
	return s.Catalog.MenuItemByID(ctx, id)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, p Principal, in models.MenuItemInput) (*models.MenuItem, error) {
	if err := p.decide(policy.Create, policy.MenuItem).Err(); err != nil {
		return nil, err
	}
	if err := requireItemFields(in); err != nil {
		return nil, err
	}

	item := &models.MenuItem{}
	if err := s.applyItemInput(ctx, item, in); err != nil {
		return nil, err
	}
	if err := s.Catalog.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem replaces the item (partial false) or changes only the
// fields present in the input.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, p Principal, id uint, in models.MenuItemInput, partial bool) (*models.MenuItem, error) {
	op := policy.Update
	if partial {
		op = policy.PartialUpdate
	}
	if err := p.decide(op, policy.MenuItem).Err(); err != nil {
		return nil, err
	}
	if !partial {
		if err := requireItemFields(in); err != nil {
			return nil, err
		}
	}

	item, err := s.Catalog.MenuItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyItemInput(ctx, item, in); err != nil {
		return nil, err
	}
	if err := s.Catalog.SaveMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, p Principal, id uint) error {
	if err := p.decide(policy.Delete, policy.MenuItem).Err(); err != nil {
		return err
	}
	return s.Catalog.DeleteMenuItem(ctx, id)
}

// AttachImage uploads a picture for the menu item and records its URL.
func (s *CatalogService) AttachImage(ctx context.Context, p Principal, id uint, filename, contentType string, body io.Reader) (*models.MenuItem, error) {
	if err := p.decide(policy.PartialUpdate, policy.MenuItem).Err(); err != nil {
		return nil, err
	}
	if s.Images == nil {
		return nil, ErrImagesDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.Invalid("image", "upload a valid image, got %q", contentType)
	}

	item, err := s.Catalog.MenuItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("menu-items/%d-%s-%s", item.ID, s.Now().Format("20060102150405"), path.Base(filename))
	url, err := s.Images.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}

	item.ImageURL = url
	if err := s.Catalog.SaveMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func requireItemFields(in models.MenuItemInput) error {
	switch {
	case in.Title == nil:
		return apperr.Invalid("title", "this field is required")
	case in.Price == nil:
		return apperr.Invalid("price", "this field is required")
	case in.CategoryID == nil:
		return apperr.Invalid("category_id", "this field is required")
	}
	return nil
}

func (s *CatalogService) applyItemInput(ctx context.Context, item *models.MenuItem, in models.MenuItemInput) error {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return apperr.Invalid("title", "this field may not be blank")
		}
		item.Title = *in.Title
	}
	if in.Price != nil {
		if err := validatePrice("price", *in.Price, maxItemPrice); err != nil {
			return err
		}
		item.Price = *in.Price
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	if in.CategoryID != nil {
		category, err := s.Catalog.CategoryByID(ctx, *in.CategoryID)
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Invalid("category_id", "category %d does not exist", *in.CategoryID)
		}
		if err != nil {
			return err
		}
		item.CategoryID = category.ID
		item.Category = *category
	}
	return nil
}

func validatePrice(field string, m models.Money, limit decimal.Decimal) error {
	switch {
	case m.IsNegative():
		return apperr.Invalid(field, "ensure this value is greater than or equal to 0")
	case !m.HasCents():
		return apperr.Invalid(field, "ensure that there are no more than 2 decimal places")
	case limit.IsPositive() && m.GreaterThan(limit):
		return apperr.Invalid(field, "ensure this value is at most %s", limit.StringFixed(2))
	}
	return nil
}

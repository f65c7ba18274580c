package services

import (
	"errors"
	"strings"

	"headphone_store_server/internal/models"
	"headphone_store_server/pkg/slug"

	"gorm.io/gorm"
)

type BrandService struct {
	db *gorm.DB
}

func NewBrandService(db *gorm.DB) *BrandService {
	return &BrandService{db: db}
}

// List returns all brands in insertion order
func (s *BrandService) List() ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.Order("created_at ASC").Find(&brands).Error
	return brands, err
}

// GetBySlug retrieves a brand by slug
func (s *BrandService) GetBySlug(slugStr string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.Where("slug = ?", slugStr).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Brand", ID: slugStr}
		}
		return nil, err
	}
	return &brand, nil
}

// GetByID retrieves a brand by id
func (s *BrandService) GetByID(id string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.Where("id = ?", id).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Brand", ID: id}
		}
		return nil, err
	}
	return &brand, nil
}

// GetByName retrieves a brand by name, case-insensitive.
// Used as the last resolution tier for human-typed references.
func (s *BrandService) GetByName(name string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Brand", ID: name}
		}
		return nil, err
	}
	return &brand, nil
}

// Create inserts a new brand, deriving a unique slug from the name.
// The name check-then-insert has a TOCTOU window under concurrent identical
// requests; the unique indexes are the backstop.
func (s *BrandService) Create(name string) (*models.Brand, error) {
	name = strings.TrimSpace(name)

	var n int64
	if err := s.db.Model(&models.Brand{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &DuplicateNameError{Resource: "Brand", Name: name}
	}

	base := slug.Make(name)
	if base == "" {
		return nil, &InvalidNameError{Name: name}
	}

	brand := &models.Brand{
		Name: name,
		Slug: slug.Unique(base, slugTaken(s.db, "brands", nil)),
	}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// Update renames a brand. A name change re-validates uniqueness excluding
// the brand itself and regenerates a fresh unique slug.
func (s *BrandService) Update(id, name string) (*models.Brand, error) {
	brand, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || name == brand.Name {
		return brand, nil
	}

	var n int64
	if err := s.db.Model(&models.Brand{}).Where("name = ? AND id <> ?", name, id).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &DuplicateNameError{Resource: "Brand", Name: name}
	}

	base := slug.Make(name)
	if base == "" {
		return nil, &InvalidNameError{Name: name}
	}

	brand.Name = name
	brand.Slug = slug.Unique(base, slugTaken(s.db, "brands", nil))
	if err := s.db.Save(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// Delete removes a brand and returns the removed row. Headphones referencing
// it keep a dangling brand_id; there is deliberately no cascade.
func (s *BrandService) Delete(id string) (*models.Brand, error) {
	brand, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// CreateBulk validates and stages each name independently, collecting
// per-item errors without aborting the batch, then commits all staged rows
// in one transaction. A commit failure discards the whole batch and is
// reported as a single error with zero created items.
func (s *BrandService) CreateBulk(names []string) ([]models.Brand, []string, error) {
	var itemErrs []string

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	stagedSlugs := make(map[string]bool)
	stagedNames := make(map[string]bool)
	exists := slugTaken(tx, "brands", stagedSlugs)

	var staged []*models.Brand
	for _, raw := range names {
		name := strings.TrimSpace(raw)

		var n int64
		if err := tx.Model(&models.Brand{}).Where("name = ?", name).Count(&n).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		if n > 0 || stagedNames[name] {
			itemErrs = append(itemErrs, (&DuplicateNameError{Resource: "Brand", Name: name}).Error())
			continue
		}

		base := slug.Make(name)
		if base == "" {
			itemErrs = append(itemErrs, (&InvalidNameError{Name: name}).Error())
			continue
		}

		uniq := slug.Unique(base, exists)
		stagedSlugs[uniq] = true
		stagedNames[name] = true
		staged = append(staged, &models.Brand{Name: name, Slug: uniq})
	}

	for _, b := range staged {
		if err := tx.Create(b).Error; err != nil {
			tx.Rollback()
			itemErrs = append(itemErrs, "Lỗi commit: "+err.Error())
			return nil, itemErrs, nil
		}
	}
	if err := tx.Commit().Error; err != nil {
		itemErrs = append(itemErrs, "Lỗi commit: "+err.Error())
		return nil, itemErrs, nil
	}

	created := make([]models.Brand, 0, len(staged))
	for _, b := range staged {
		created = append(created, *b)
	}
	return created, itemErrs, nil
}

package services

import (
	"errors"
	"strings"

	"headphone_store_server/internal/models"
	"headphone_store_server/pkg/slug"

	"gorm.io/gorm"
)

// TypeService mirrors BrandService over the types table; the two entities
// share shape and invariants.
type TypeService struct {
	db *gorm.DB
}

func NewTypeService(db *gorm.DB) *TypeService {
	return &TypeService{db: db}
}

// List returns all product types in insertion order
func (s *TypeService) List() ([]models.ProductType, error) {
	var types []models.ProductType
	err := s.db.Order("created_at ASC").Find(&types).Error
	return types, err
}

// GetBySlug retrieves a product type by slug
func (s *TypeService) GetBySlug(slugStr string) (*models.ProductType, error) {
	var t models.ProductType
	if err := s.db.Where("slug = ?", slugStr).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Type", ID: slugStr}
		}
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a product type by id
func (s *TypeService) GetByID(id string) (*models.ProductType, error) {
	var t models.ProductType
	if err := s.db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Type", ID: id}
		}
		return nil, err
	}
	return &t, nil
}

// GetByName retrieves a product type by name, case-insensitive
func (s *TypeService) GetByName(name string) (*models.ProductType, error) {
	var t models.ProductType
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Type", ID: name}
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new product type, deriving a unique slug from the name
func (s *TypeService) Create(name string) (*models.ProductType, error) {
	name = strings.TrimSpace(name)

	var n int64
	if err := s.db.Model(&models.ProductType{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &DuplicateNameError{Resource: "Type", Name: name}
	}

	base := slug.Make(name)
	if base == "" {
		return nil, &InvalidNameError{Name: name}
	}

	t := &models.ProductType{
		Name: name,
		Slug: slug.Unique(base, slugTaken(s.db, "types", nil)),
	}
	if err := s.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// Update renames a product type, regenerating the slug on a name change
func (s *TypeService) Update(id, name string) (*models.ProductType, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || name == t.Name {
		return t, nil
	}

	var n int64
	if err := s.db.Model(&models.ProductType{}).Where("name = ? AND id <> ?", name, id).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &DuplicateNameError{Resource: "Type", Name: name}
	}

	base := slug.Make(name)
	if base == "" {
		return nil, &InvalidNameError{Name: name}
	}

	t.Name = name
	t.Slug = slug.Unique(base, slugTaken(s.db, "types", nil))
	if err := s.db.Save(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a product type and returns the removed row
func (s *TypeService) Delete(id string) (*models.ProductType, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// CreateBulk stages valid names and commits them atomically; see
// BrandService.CreateBulk for the two-layer failure policy.
func (s *TypeService) CreateBulk(names []string) ([]models.ProductType, []string, error) {
	var itemErrs []string

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	stagedSlugs := make(map[string]bool)
	stagedNames := make(map[string]bool)
	exists := slugTaken(tx, "types", stagedSlugs)

	var staged []*models.ProductType
	for _, raw := range names {
		name := strings.TrimSpace(raw)

		var n int64
		if err := tx.Model(&models.ProductType{}).Where("name = ?", name).Count(&n).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		if n > 0 || stagedNames[name] {
			itemErrs = append(itemErrs, (&DuplicateNameError{Resource: "Type", Name: name}).Error())
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
		staged = append(staged, &models.ProductType{Name: name, Slug: uniq})
	}

	for _, t := range staged {
		if err := tx.Create(t).Error; err != nil {
			tx.Rollback()
			itemErrs = append(itemErrs, "Lỗi commit: "+err.Error())
			return nil, itemErrs, nil
		}
	}
	if err := tx.Commit().Error; err != nil {
		itemErrs = append(itemErrs, "Lỗi commit: "+err.Error())
		return nil, itemErrs, nil
	}

	created := make([]models.ProductType, 0, len(staged))
	for _, t := range staged {
		created = append(created, *t)
	}
	return created, itemErrs, nil
}

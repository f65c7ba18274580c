package services

import (
	"errors"
	"strings"

	"headphone_store_server/internal/models"
	"headphone_store_server/pkg/slug"

	"gorm.io/gorm"
)

// HeadphoneInput carries the creation payload. BrandRef and TypeRef are
// slug-or-name-or-id strings resolved against the catalog before insert.
type HeadphoneInput struct {
	Name     string
	BrandRef string
	TypeRef  string
	Price    int
}

// HeadphoneUpdate carries the full desired state for an update; brand, type
// and price overwrite unconditionally.
type HeadphoneUpdate struct {
	Name    string
	BrandID *string
	TypeID  *string
	Price   int
}

type HeadphoneService struct {
	db *gorm.DB
}

func NewHeadphoneService(db *gorm.DB) *HeadphoneService {
	return &HeadphoneService{db: db}
}

// List returns all headphones with brand and type joined, in insertion order
func (s *HeadphoneService) List() ([]models.Headphone, error) {
	var headphones []models.Headphone
	err := s.db.Preload("Brand").Preload("Type").Order("created_at ASC").Find(&headphones).Error
	return headphones, err
}

// GetBySlug retrieves a headphone by slug with brand and type joined
func (s *HeadphoneService) GetBySlug(slugStr string) (*models.Headphone, error) {
	var h models.Headphone
	if err := s.db.Preload("Brand").Preload("Type").Where("slug = ?", slugStr).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Tai nghe", ID: slugStr}
		}
		return nil, err
	}
	return &h, nil
}

// GetByID retrieves a headphone by id with brand and type joined
func (s *HeadphoneService) GetByID(id string) (*models.Headphone, error) {
	var h models.Headphone
	if err := s.db.Preload("Brand").Preload("Type").Where("id = ?", id).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Tai nghe", ID: id}
		}
		return nil, err
	}
	return &h, nil
}

// ResolveBrand resolves a slug-or-name-or-id string to a brand id
func (s *HeadphoneService) ResolveBrand(identifier string) (string, error) {
	return resolveReference(s.db, "brands", "brand", identifier)
}

// ResolveType resolves a slug-or-name-or-id string to a type id
func (s *HeadphoneService) ResolveType(identifier string) (string, error) {
	return resolveReference(s.db, "types", "type", identifier)
}

// Create inserts a new headphone. Both references must resolve to existing
// entities; this layer never creates brands or types implicitly.
// The name check-then-insert has a TOCTOU window under concurrent identical
// requests; the unique indexes are the backstop.
func (s *HeadphoneService) Create(in HeadphoneInput) (*models.Headphone, error) {
	name := strings.TrimSpace(in.Name)
	if in.Price < 0 {
		return nil, &NegativePriceError{Name: name, Price: in.Price}
	}

	var n int64
	if err := s.db.Model(&models.Headphone{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &DuplicateNameError{Resource: "Tai nghe", Name: name}
	}

	brandID, err := s.ResolveBrand(in.BrandRef)
	if err != nil {
		return nil, err
	}
	typeID, err := s.ResolveType(in.TypeRef)
	if err != nil {
		return nil, err
	}

	base := slug.Make(name)
	if base == "" {
		return nil, &InvalidNameError{Name: name}
	}

	h := &models.Headphone{
		Name:    name,
		Slug:    slug.Unique(base, slugTaken(s.db, "headphones", nil)),
		Price:   in.Price,
		BrandID: &brandID,
		TypeID:  &typeID,
	}
	if err := s.db.Create(h).Error; err != nil {
		return nil, err
	}
	return s.GetByID(h.ID)
}

// Update overwrites a headphone with the supplied full state. A name change
// re-validates uniqueness excluding the row itself and regenerates the slug.
func (s *HeadphoneService) Update(id string, in HeadphoneUpdate) (*models.Headphone, error) {
	h, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, &NegativePriceError{Name: h.Name, Price: in.Price}
	}

	name := strings.TrimSpace(in.Name)
	if name != "" && name != h.Name {
		var n int64
		if err := s.db.Model(&models.Headphone{}).Where("name = ? AND id <> ?", name, id).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, &DuplicateNameError{Resource: "Tai nghe", Name: name}
		}

		base := slug.Make(name)
		if base == "" {
			return nil, &InvalidNameError{Name: name}
		}
		h.Name = name
		h.Slug = slug.Unique(base, slugTaken(s.db, "headphones", nil))
	}

	h.BrandID = in.BrandID
	h.TypeID = in.TypeID
	h.Price = in.Price
	h.Brand = nil
	h.Type = nil
	if err := s.db.Save(h).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a headphone and returns the removed row
func (s *HeadphoneService) Delete(id string) (*models.Headphone, error) {
	h, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(&models.Headphone{ID: h.ID}).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// CreateBulk validates and stages each item independently. Unlike Create, a
// missing reference is tolerated (left null) as long as it was never
// supplied; a supplied reference that does not resolve is a per-item error.
// Staged rows commit atomically; a commit failure discards the whole batch.
func (s *HeadphoneService) CreateBulk(inputs []HeadphoneInput) ([]models.Headphone, []string, error) {
	var itemErrs []string

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	stagedSlugs := make(map[string]bool)
	stagedNames := make(map[string]bool)
	exists := slugTaken(tx, "headphones", stagedSlugs)

	var staged []*models.Headphone
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if in.Price < 0 {
			itemErrs = append(itemErrs, (&NegativePriceError{Name: name, Price: in.Price}).Error())
			continue
		}

		var n int64
		if err := tx.Model(&models.Headphone{}).Where("name = ?", name).Count(&n).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		if n > 0 || stagedNames[name] {
			itemErrs = append(itemErrs, (&DuplicateNameError{Resource: "Tai nghe", Name: name}).Error())
			continue
		}

		var brandID, typeID *string
		if strings.TrimSpace(in.BrandRef) != "" {
			id, err := resolveReference(tx, "brands", "brand", in.BrandRef)
			if err != nil {
				itemErrs = append(itemErrs, "không tìm thấy brand '"+in.BrandRef+"' cho tai nghe '"+name+"'")
				continue
			}
			brandID = &id
		}
		if strings.TrimSpace(in.TypeRef) != "" {
			id, err := resolveReference(tx, "types", "type", in.TypeRef)
			if err != nil {
				itemErrs = append(itemErrs, "không tìm thấy type '"+in.TypeRef+"' cho tai nghe '"+name+"'")
				continue
			}
			typeID = &id
		}

		base := slug.Make(name)
		if base == "" {
			itemErrs = append(itemErrs, (&InvalidNameError{Name: name}).Error())
			continue
		}

		uniq := slug.Unique(base, exists)
		stagedSlugs[uniq] = true
		stagedNames[name] = true
		staged = append(staged, &models.Headphone{
			Name:    name,
			Slug:    uniq,
			Price:   in.Price,
			BrandID: brandID,
			TypeID:  typeID,
		})
	}

	for _, h := range staged {
		if err := tx.Create(h).Error; err != nil {
			tx.Rollback()
			itemErrs = append(itemErrs, "Lỗi commit: "+err.Error())
			return nil, itemErrs, nil
		}
	}
	if err := tx.Commit().Error; err != nil {
		itemErrs = append(itemErrs, "Lỗi commit: "+err.Error())
		return nil, itemErrs, nil
	}

	created := make([]models.Headphone, 0, len(staged))
	for _, h := range staged {
		full, err := s.GetByID(h.ID)
		if err != nil {
			created = append(created, *h)
			continue
		}
		created = append(created, *full)
	}
	return created, itemErrs, nil
}

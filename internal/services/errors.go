package services

import "fmt"

// Domain errors raised by the catalog and chat services. Handlers and the
// chatbot match on these with errors.As to produce user-facing responses
// instead of leaking storage errors.

// DuplicateNameError is returned when a create or rename collides with an
// existing entity name (case-sensitive exact match).
type DuplicateNameError struct {
	Resource string
	Name     string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s với tên '%s' đã tồn tại", e.Resource, e.Name)
}

// InvalidNameError is returned when a name yields an empty slug.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("không thể tạo slug từ tên '%s', tên phải chứa ít nhất một ký tự hợp lệ", e.Name)
}

// NegativePriceError is returned when a headphone write carries a price
// below zero.
type NegativePriceError struct {
	Name  string
	Price int
}

func (e *NegativePriceError) Error() string {
	return fmt.Sprintf("giá không được âm cho tai nghe '%s'", e.Name)
}

// ReferenceNotFoundError is returned when a brand/type reference string
// resolves to nothing.
type ReferenceNotFoundError struct {
	Resource   string
	Identifier string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("không tìm thấy %s '%s'", e.Resource, e.Identifier)
}

// NotFoundError is returned when an entity id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s với ID '%s' không tồn tại", e.Resource, e.ID)
}

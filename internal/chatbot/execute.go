package chatbot

import (
	"errors"
	"fmt"
	"strings"

	"headphone_store_server/internal/services"
)

const invalidOperationReply = "Hành động hoặc resource CRUD không hợp lệ."

// execute runs a translated operation against the catalog and renders the
// outcome as user-facing text. Domain errors become validation messages;
// nothing from the storage layer leaks through raw.
func (b *Bot) execute(op Operation, message string) string {
	switch o := op.(type) {
	case CreateOp:
		return b.executeCreate(o, message)
	case ReadOp:
		return b.executeRead(o)
	case UpdateOp:
		return b.executeUpdate(o)
	case DeleteOp:
		return b.executeDelete(o)
	case BulkCreateOp:
		return b.executeBulkCreate(o, message)
	default:
		return invalidOperationReply
	}
}

func (b *Bot) executeCreate(op CreateOp, message string) string {
	switch op.Resource {
	case ResourceBrand:
		brand, err := b.brands.Create(stringField(op.Data, "name"))
		if err != nil {
			return domainReply(err)
		}
		return "Đã tạo brand: " + brand.Name

	case ResourceType:
		t, err := b.types.Create(stringField(op.Data, "name"))
		if err != nil {
			return domainReply(err)
		}
		return "Đã tạo type: " + t.Name

	case ResourceHeadphone:
		if stringField(op.Data, "name") == "" {
			return "Lỗi: Thiếu 'name' (tên tai nghe) trong data"
		}
		InferHeadphoneFields(message, op.Data)

		if stringField(op.Data, "brand_slug") == "" {
			return "Brand là bắt buộc. Vui lòng cung cấp brand_slug."
		}
		if stringField(op.Data, "type_slug") == "" {
			return "Type là bắt buộc. Vui lòng cung cấp type_slug."
		}
		price := coercePrice(op.Data["price"])
		if price < 0 {
			return "Lỗi: Giá không được âm"
		}

		h, err := b.headphones.Create(services.HeadphoneInput{
			Name:     stringField(op.Data, "name"),
			BrandRef: stringField(op.Data, "brand_slug"),
			TypeRef:  stringField(op.Data, "type_slug"),
			Price:    price,
		})
		if err != nil {
			return domainReply(err)
		}
		reply := "Đã thêm tai nghe: " + h.Name
		if h.Brand != nil {
			reply += " - Thương hiệu: " + h.Brand.Name
		}
		if h.Type != nil {
			reply += " - Loại: " + h.Type.Name
		}
		return reply
	}
	return invalidOperationReply
}

func (b *Bot) executeRead(op ReadOp) string {
	switch op.Resource {
	case ResourceBrand:
		if op.ID != "" {
			brand, err := b.brands.GetByID(op.ID)
			if err != nil {
				return "Không tìm thấy brand với ID: " + op.ID
			}
			return fmt.Sprintf("Brand: %s (ID: %s, Slug: %s)", brand.Name, brand.ID, brand.Slug)
		}
		brands, err := b.brands.List()
		if err != nil {
			return domainReply(err)
		}
		if len(brands) == 0 {
			return "Chưa có thương hiệu nào trong hệ thống."
		}
		lines := make([]string, len(brands))
		for i, brand := range brands {
			lines[i] = fmt.Sprintf("- %s (ID: %s)", brand.Name, brand.ID)
		}
		return fmt.Sprintf("Danh sách thương hiệu (%d):\n%s", len(brands), strings.Join(lines, "\n"))

	case ResourceType:
		if op.ID != "" {
			t, err := b.types.GetByID(op.ID)
			if err != nil {
				return "Không tìm thấy type với ID: " + op.ID
			}
			return fmt.Sprintf("Type: %s (ID: %s, Slug: %s)", t.Name, t.ID, t.Slug)
		}
		types, err := b.types.List()
		if err != nil {
			return domainReply(err)
		}
		if len(types) == 0 {
			return "Chưa có loại tai nghe nào trong hệ thống."
		}
		lines := make([]string, len(types))
		for i, t := range types {
			lines[i] = fmt.Sprintf("- %s (ID: %s)", t.Name, t.ID)
		}
		return fmt.Sprintf("Danh sách loại tai nghe (%d):\n%s", len(types), strings.Join(lines, "\n"))

	case ResourceHeadphone:
		if op.ID != "" {
			h, err := b.headphones.GetByID(op.ID)
			if err != nil {
				return "Không tìm thấy tai nghe với ID: " + op.ID
			}
			return fmt.Sprintf("Tai nghe: %s\nThương hiệu: %s\nLoại: %s\nGiá: %s\nID: %s",
				h.Name, h.BrandName(), h.TypeName(), formatPrice(h.Price), h.ID)
		}
		headphones, err := b.headphones.List()
		if err != nil {
			return domainReply(err)
		}
		if len(headphones) == 0 {
			return "Chưa có tai nghe nào trong kho."
		}
		lines := make([]string, len(headphones))
		for i, h := range headphones {
			lines[i] = fmt.Sprintf("- %s (%s) - %s", h.Name, h.BrandName(), formatPrice(h.Price))
		}
		return fmt.Sprintf("Danh sách tai nghe (%d):\n%s", len(headphones), strings.Join(lines, "\n"))
	}
	return invalidOperationReply
}

func (b *Bot) executeUpdate(op UpdateOp) string {
	if op.ID == "" {
		return "Cần cung cấp ID để cập nhật."
	}

	switch op.Resource {
	case ResourceBrand:
		brand, err := b.brands.Update(op.ID, stringField(op.Data, "name"))
		if err != nil {
			return domainReply(err)
		}
		return "Đã cập nhật brand: " + brand.Name

	case ResourceType:
		t, err := b.types.Update(op.ID, stringField(op.Data, "name"))
		if err != nil {
			return domainReply(err)
		}
		return "Đã cập nhật type: " + t.Name

	case ResourceHeadphone:
		current, err := b.headphones.GetByID(op.ID)
		if err != nil {
			return domainReply(err)
		}

		update := services.HeadphoneUpdate{
			Name:    stringField(op.Data, "name"),
			BrandID: current.BrandID,
			TypeID:  current.TypeID,
			Price:   current.Price,
		}
		if _, ok := op.Data["price"]; ok {
			update.Price = coercePrice(op.Data["price"])
		}
		if ref := stringField(op.Data, "brand_slug"); ref != "" {
			id, resolveErr := b.headphones.ResolveBrand(ref)
			if resolveErr != nil {
				return domainReply(resolveErr)
			}
			update.BrandID = &id
		}
		if ref := stringField(op.Data, "type_slug"); ref != "" {
			id, resolveErr := b.headphones.ResolveType(ref)
			if resolveErr != nil {
				return domainReply(resolveErr)
			}
			update.TypeID = &id
		}

		h, err := b.headphones.Update(op.ID, update)
		if err != nil {
			return domainReply(err)
		}
		return "Đã cập nhật tai nghe: " + h.Name
	}
	return invalidOperationReply
}

func (b *Bot) executeDelete(op DeleteOp) string {
	switch op.Resource {
	case ResourceBrand:
		if _, err := b.brands.Delete(op.ID); err != nil {
			return domainReply(err)
		}
		return "Đã xoá brand: " + op.ID
	case ResourceType:
		if _, err := b.types.Delete(op.ID); err != nil {
			return domainReply(err)
		}
		return "Đã xoá type: " + op.ID
	case ResourceHeadphone:
		if _, err := b.headphones.Delete(op.ID); err != nil {
			return domainReply(err)
		}
		return "Đã xoá tai nghe: " + op.ID
	}
	return invalidOperationReply
}

func (b *Bot) executeBulkCreate(op BulkCreateOp, message string) string {
	switch op.Resource {
	case ResourceBrand:
		names := itemNames(op.Items)
		created, itemErrs, err := b.brands.CreateBulk(names)
		if err != nil {
			return domainReply(err)
		}
		lines := make([]string, len(created))
		for i, brand := range created {
			lines[i] = "- " + brand.Name
		}
		result := fmt.Sprintf("Đã tạo %d brands:\n%s", len(created), strings.Join(lines, "\n"))
		return appendBulkErrors(result, itemErrs)

	case ResourceType:
		names := itemNames(op.Items)
		created, itemErrs, err := b.types.CreateBulk(names)
		if err != nil {
			return domainReply(err)
		}
		lines := make([]string, len(created))
		for i, t := range created {
			lines[i] = "- " + t.Name
		}
		result := fmt.Sprintf("Đã tạo %d types:\n%s", len(created), strings.Join(lines, "\n"))
		return appendBulkErrors(result, itemErrs)

	case ResourceHeadphone:
		inputs := make([]services.HeadphoneInput, 0, len(op.Items))
		for _, item := range op.Items {
			InferHeadphoneFields(message, item)
			inputs = append(inputs, services.HeadphoneInput{
				Name:     stringField(item, "name"),
				BrandRef: stringField(item, "brand_slug"),
				TypeRef:  stringField(item, "type_slug"),
				Price:    coercePrice(item["price"]),
			})
		}
		created, itemErrs, err := b.headphones.CreateBulk(inputs)
		if err != nil {
			return domainReply(err)
		}
		lines := make([]string, len(created))
		for i, h := range created {
			line := "- " + h.Name
			if h.Brand != nil {
				line += " (" + h.Brand.Name + ")"
			}
			lines[i] = line
		}
		result := fmt.Sprintf("Đã tạo %d tai nghe:\n%s", len(created), strings.Join(lines, "\n"))
		return appendBulkErrors(result, itemErrs)
	}
	return invalidOperationReply
}

func itemNames(items []map[string]any) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, stringField(item, "name"))
	}
	return names
}

func appendBulkErrors(result string, itemErrs []string) string {
	if len(itemErrs) == 0 {
		return result
	}
	lines := make([]string, len(itemErrs))
	for i, e := range itemErrs {
		lines[i] = "- " + e
	}
	return result + fmt.Sprintf("\n\nLỗi (%d):\n%s", len(itemErrs), strings.Join(lines, "\n"))
}

// domainReply folds a service error into user-facing text. Typed domain
// errors read as validation problems; anything else is a processing fault.
func domainReply(err error) string {
	var dup *services.DuplicateNameError
	var inv *services.InvalidNameError
	var neg *services.NegativePriceError
	var ref *services.ReferenceNotFoundError
	var nf *services.NotFoundError
	if errors.As(err, &dup) || errors.As(err, &inv) || errors.As(err, &neg) || errors.As(err, &ref) || errors.As(err, &nf) {
		return "Lỗi validation: " + err.Error()
	}
	return "Lỗi xử lý CRUD: " + err.Error()
}

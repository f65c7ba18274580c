package chatbot

import "strings"

// Intent classifies what a chat message is asking for.
type Intent string

const (
	// IntentManagement covers CRUD requests against the catalog.
	IntentManagement Intent = "product_management"
	// IntentAdvisory covers product recommendation conversations.
	IntentAdvisory Intent = "customer_service"
	// IntentGeneral covers everything else.
	IntentGeneral Intent = "general"
)

var managementKeywords = []string{
	"thêm", "tạo", "create", "add",
	"sửa", "cập nhật", "update", "edit",
	"xóa", "delete", "remove",
	"xem", "hiển thị", "show", "list", "get",
	"quản lý", "manage", "kho", "database",
	"brand", "type", "thương hiệu", "loại",
}

var advisoryKeywords = []string{
	"tư vấn", "gợi ý", "recommend", "suggest",
	"phù hợp", "suitable", "mua", "buy", "chọn", "choose",
	"giá", "price", "budget", "ngân sách",
	"gaming", "âm nhạc", "thể thao", "làm việc",
}

// DetectIntent picks the intent by keyword substring matching on the
// lower-cased message. Management wins when both lists match.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, kw := range managementKeywords {
		if strings.Contains(lower, kw) {
			return IntentManagement
		}
	}
	for _, kw := range advisoryKeywords {
		if strings.Contains(lower, kw) {
			return IntentAdvisory
		}
	}
	return IntentGeneral
}

package chatbot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"headphone_store_server/internal/ai"
	"headphone_store_server/internal/models"
	"headphone_store_server/internal/services"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type scriptedGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	_ = ctx
	_ = maxTokens
	_ = temperature
	g.lastPrompt = prompt
	return g.reply, g.err
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Brand{},
		&models.ProductType{},
		&models.Headphone{},
		&models.ChatSession{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestBot(t *testing.T, db *gorm.DB, gen Generator) *Bot {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewBot(
		services.NewBrandService(db),
		services.NewTypeService(db),
		services.NewHeadphoneService(db),
		services.NewChatService(db),
		gen,
		nil,
		logger,
	)
}

func TestChat_ManagementCreateBrand(t *testing.T) {
	db := openTestDB(t)
	gen := &scriptedGenerator{reply: "```json\n{\"action\": \"create\", \"resource\": \"brand\", \"data\": {\"name\": \"Sony\"},}\n```"}
	bot := newTestBot(t, db, gen)

	reply, sessionID, err := bot.Chat(context.Background(), "Tạo brand Sony", "", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Đã tạo brand: Sony" {
		t.Fatalf("reply = %q", reply)
	}
	if sessionID == "" {
		t.Fatal("expected session id")
	}

	brand, err := services.NewBrandService(db).GetBySlug("sony")
	if err != nil {
		t.Fatalf("brand not persisted: %v", err)
	}
	if brand.Name != "Sony" {
		t.Fatalf("brand name = %q", brand.Name)
	}

	session, err := services.NewChatService(db).GetSessionWithMessages(sessionID, 10)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if len(session.Messages) != 2 {
		t.Fatalf("stored %d messages, want user + assistant", len(session.Messages))
	}
}

func TestChat_ManagementCreateHeadphoneInfersFields(t *testing.T) {
	db := openTestDB(t)
	if _, err := services.NewBrandService(db).Create("Sony"); err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	if _, err := services.NewTypeService(db).Create("Bluetooth"); err != nil {
		t.Fatalf("seed type: %v", err)
	}

	// model omits brand, type and price; they come from the message
	gen := &scriptedGenerator{reply: `{"action": "create", "resource": "headphone", "data": {"name": "WH-1000XM5"}}`}
	bot := newTestBot(t, db, gen)

	reply, _, err := bot.Chat(context.Background(), "Tạo tai nghe WH-1000XM5 bluetooth của sony", "", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(reply, "Đã thêm tai nghe: WH-1000XM5") {
		t.Fatalf("reply = %q", reply)
	}

	h, err := services.NewHeadphoneService(db).GetBySlug("wh-1000xm5")
	if err != nil {
		t.Fatalf("headphone not persisted: %v", err)
	}
	if h.Price != 500000 {
		t.Fatalf("price = %d, want default", h.Price)
	}
	if h.Brand == nil || h.Brand.Name != "Sony" {
		t.Fatal("brand not inferred from message")
	}
}

func TestChat_BulkCreateRejectsNegativePrice(t *testing.T) {
	db := openTestDB(t)
	if _, err := services.NewBrandService(db).Create("Sony"); err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	if _, err := services.NewTypeService(db).Create("Bluetooth"); err != nil {
		t.Fatalf("seed type: %v", err)
	}

	gen := &scriptedGenerator{reply: `{"action": "create_bulk", "resource": "headphone", "items": [` +
		`{"name": "Buds Âm", "brand_slug": "sony", "type_slug": "bluetooth", "price": -5000}, ` +
		`{"name": "Buds Dương", "brand_slug": "sony", "type_slug": "bluetooth", "price": 100000}]}`}
	bot := newTestBot(t, db, gen)

	reply, _, err := bot.Chat(context.Background(), "Tạo nhiều tai nghe", "", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(reply, "giá không được âm") {
		t.Fatalf("reply = %q", reply)
	}
	if !strings.Contains(reply, "Buds Dương") {
		t.Fatalf("valid item missing from reply %q", reply)
	}

	svc := services.NewHeadphoneService(db)
	if _, err := svc.GetBySlug("buds-am"); err == nil {
		t.Fatal("negative-priced row persisted")
	}
	if _, err := svc.GetBySlug("buds-duong"); err != nil {
		t.Fatalf("valid row missing: %v", err)
	}
}

func TestChat_ManagementMalformedCompletion(t *testing.T) {
	db := openTestDB(t)
	gen := &scriptedGenerator{reply: "tôi không chắc phải làm gì"}
	bot := newTestBot(t, db, gen)

	reply, _, err := bot.Chat(context.Background(), "Tạo brand Sony", "", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(reply, "Không tìm thấy JSON object") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestChat_AdvisoryUsesCatalogContext(t *testing.T) {
	db := openTestDB(t)
	if _, err := services.NewBrandService(db).Create("Bose"); err != nil {
		t.Fatalf("seed brand: %v", err)
	}

	gen := &scriptedGenerator{reply: "Bạn nên thử Bose QuietComfort."}
	bot := newTestBot(t, db, gen)

	reply, sessionID, err := bot.Chat(context.Background(), "Tư vấn tai nghe chống ồn cho mình", "", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Bạn nên thử Bose QuietComfort." {
		t.Fatalf("reply = %q", reply)
	}
	if !strings.Contains(gen.lastPrompt, "THÔNG TIN CỬA HÀNG TAI NGHE") {
		t.Fatal("prompt missing catalog snapshot")
	}
	if !strings.Contains(gen.lastPrompt, "Bose") {
		t.Fatal("prompt missing seeded brand")
	}

	// a second turn should carry the history block
	if _, _, err := bot.Chat(context.Background(), "Mẫu nào pin trâu hơn vậy?", sessionID, ""); err != nil {
		t.Fatalf("second Chat: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "LỊCH SỬ HỘI THOẠI") {
		t.Fatal("prompt missing history block")
	}
}

func TestChat_GenerationFailureLeavesStoreUntouched(t *testing.T) {
	db := openTestDB(t)
	gen := &scriptedGenerator{err: &ai.GenerationError{Reason: "connection refused"}}
	bot := newTestBot(t, db, gen)

	reply, sessionID, err := bot.Chat(context.Background(), "Tạo brand Sony", "", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(reply, "không khả dụng") {
		t.Fatalf("reply = %q", reply)
	}

	session, err := services.NewChatService(db).GetSessionWithMessages(sessionID, 10)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	// only the user turn is recorded
	if len(session.Messages) != 1 || !session.Messages[0].IsFromUser() {
		t.Fatalf("stored %d messages", len(session.Messages))
	}

	var n int64
	db.Model(&models.Brand{}).Count(&n)
	if n != 0 {
		t.Fatalf("%d brands created during outage", n)
	}
}

func TestChat_UnknownSessionGetsReplaced(t *testing.T) {
	db := openTestDB(t)
	gen := &scriptedGenerator{reply: "chào bạn"}
	bot := newTestBot(t, db, gen)

	_, sessionID, err := bot.Chat(context.Background(), "Xin chào", "không-tồn-tại", "")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if sessionID == "không-tồn-tại" {
		t.Fatal("expected a fresh session id")
	}
	if _, err := services.NewChatService(db).GetSession(sessionID); err != nil {
		t.Fatalf("fresh session missing: %v", err)
	}
}

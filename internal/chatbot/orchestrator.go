package chatbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"headphone_store_server/internal/ai"
	"headphone_store_server/internal/models"
	"headphone_store_server/internal/services"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	textmessage "golang.org/x/text/message"
)

// Generator produces a completion for a prompt. Satisfied by ai.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Searcher looks up real products for a brand and category. Satisfied by
// ai.SearchClient.
type Searcher interface {
	SearchHeadphones(ctx context.Context, brand, category string, limit int) []ai.Product
}

// Bot routes chat messages: management requests become validated CRUD
// operations against the catalog, everything else becomes a free-form
// completion grounded in the current catalog and conversation history.
type Bot struct {
	brands     *services.BrandService
	types      *services.TypeService
	headphones *services.HeadphoneService
	chats      *services.ChatService
	gen        Generator
	search     Searcher
	logger     *logrus.Logger
}

func NewBot(
	brands *services.BrandService,
	types *services.TypeService,
	headphones *services.HeadphoneService,
	chats *services.ChatService,
	gen Generator,
	search Searcher,
	logger *logrus.Logger,
) *Bot {
	return &Bot{
		brands:     brands,
		types:      types,
		headphones: headphones,
		chats:      chats,
		gen:        gen,
		search:     search,
		logger:     logger,
	}
}

const (
	managementMaxTokens = 500
	advisoryMaxTokens   = 900
	historyFetchLimit   = 10
	historyPromptTurns  = 6
	searchResultLimit   = 3

	unavailableReply = "Xin lỗi, trợ lý AI hiện không khả dụng. Vui lòng thử lại sau."
)

var searchTriggers = []*regexp.Regexp{
	regexp.MustCompile(`\b(thật|thực|real|actual|global|latest|mới nhất|hiện tại|2024|2025)\b`),
	regexp.MustCompile(`\b(trên thị trường|on market|available)\b`),
	regexp.MustCompile(`\b(sản phẩm.*của)\b`),
}

var (
	pricePrinter = textmessage.NewPrinter(language.English)
	titleCaser   = cases.Title(language.English)
)

// Chat handles one user message and returns the assistant reply plus the
// session id the turn was recorded under. A new session is created when the
// supplied id is empty or unknown.
func (b *Bot) Chat(ctx context.Context, message, sessionID, systemPrompt string) (string, string, error) {
	var history []models.ChatMessage

	if sessionID == "" {
		session, err := b.chats.CreateSession(nil)
		if err != nil {
			return "", "", err
		}
		sessionID = session.ID
	} else {
		session, err := b.chats.GetSessionWithMessages(sessionID, historyFetchLimit)
		var nf *services.NotFoundError
		switch {
		case err == nil:
			history = session.Messages
		case errors.As(err, &nf):
			fresh, createErr := b.chats.CreateSession(nil)
			if createErr != nil {
				return "", "", createErr
			}
			sessionID = fresh.ID
		default:
			return "", "", err
		}
	}

	if _, err := b.chats.AppendMessage(sessionID, models.ChatRoleUser, message); err != nil {
		return "", "", err
	}

	intent := DetectIntent(message)

	var reply string
	var err error
	if intent == IntentManagement {
		reply, err = b.handleManagement(ctx, message)
	} else {
		reply, err = b.handleConversation(ctx, message, intent, systemPrompt, history)
	}
	if err != nil {
		var genErr *ai.GenerationError
		if errors.As(err, &genErr) {
			// model outage: answer politely, keep the store untouched
			b.logger.WithError(genErr).Warn("completion failed")
			return unavailableReply, sessionID, nil
		}
		return "", "", err
	}

	if _, err := b.chats.AppendMessage(sessionID, models.ChatRoleAssistant, reply); err != nil {
		return "", "", err
	}
	return reply, sessionID, nil
}

func (b *Bot) handleManagement(ctx context.Context, message string) (string, error) {
	prompt := crudJSONPrompt + b.webSearchContext(ctx, message) +
		"\n\nUser: " + message + "\n\nTRẢ VỀ CHỈ 1 JSON:"

	completion, err := b.gen.Generate(ctx, prompt, managementMaxTokens, 0)
	if err != nil {
		return "", err
	}

	op, parseErr := ParseOperation(completion)
	if parseErr != nil {
		var malformed *MalformedResponseError
		var invalid *ValidationError
		if errors.As(parseErr, &malformed) || errors.As(parseErr, &invalid) {
			return parseErr.Error(), nil
		}
		return "", parseErr
	}
	return b.execute(op, message), nil
}

func (b *Bot) handleConversation(ctx context.Context, message string, intent Intent, systemPrompt string, history []models.ChatMessage) (string, error) {
	if systemPrompt == "" {
		systemPrompt = PromptForIntent(intent)
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n")
	sb.WriteString(b.databaseContext())
	sb.WriteString("\n")
	sb.WriteString(formatHistory(history))
	sb.WriteString("Khách hàng: " + message + "\n\nTrợ lý:")

	return b.gen.Generate(ctx, sb.String(), advisoryMaxTokens, 0.7)
}

// webSearchContext enriches a management prompt with real market products
// when the message asks for them and names a known brand. Lookup failures
// cost nothing: the prompt just stays unenriched.
func (b *Bot) webSearchContext(ctx context.Context, message string) string {
	if b.search == nil {
		return ""
	}

	lower := strings.ToLower(message)
	triggered := false
	for _, re := range searchTriggers {
		if re.MatchString(lower) {
			triggered = true
			break
		}
	}
	if !triggered {
		return ""
	}

	brand := matchBrand(message)
	if brand == "" {
		return ""
	}
	category := matchTypeSlug(message)
	if category == "" {
		category = "bluetooth"
	}

	products := b.search.SearchHeadphones(ctx, titleCaser.String(brand), category, searchResultLimit)
	if len(products) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\nSẢN PHẨM THỰC TẾ TÌM ĐƯỢC TRÊN THỊ TRƯỜNG (%s %s):\n", titleCaser.String(brand), category)
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s: %s\n", p.Name, formatPrice(p.Price))
	}
	sb.WriteString("\nHÃY SỬ DỤNG CÁC TÊN SẢN PHẨM THẬT NÀY thay vì tên chung chung.\n")
	return sb.String()
}

// databaseContext snapshots the catalog for the advisory prompt so the
// model answers from real stock instead of inventing products.
func (b *Bot) databaseContext() string {
	brands, err := b.brands.List()
	if err != nil {
		return "\nLỗi đọc database: " + err.Error() + "\n"
	}
	types, err := b.types.List()
	if err != nil {
		return "\nLỗi đọc database: " + err.Error() + "\n"
	}
	headphones, err := b.headphones.List()
	if err != nil {
		return "\nLỗi đọc database: " + err.Error() + "\n"
	}

	var sb strings.Builder
	sb.WriteString("\nTHÔNG TIN CỬA HÀNG TAI NGHE:\n\nTỔNG QUAN:")
	fmt.Fprintf(&sb, "\n- Có %d thương hiệu: %s", len(brands), joinBrandNames(brands))
	fmt.Fprintf(&sb, "\n- Có %d loại sản phẩm: %s", len(types), joinTypeNames(types))
	fmt.Fprintf(&sb, "\n- Có %d tai nghe trong kho", len(headphones))

	sb.WriteString("\n\nTAI NGHE HIỆN CÓ:")
	if len(headphones) == 0 {
		sb.WriteString("\n- Hiện tại chưa có tai nghe nào")
	}
	for _, h := range headphones {
		fmt.Fprintf(&sb, "\n- %s (%s - %s): %s", h.Name, h.BrandName(), h.TypeName(), formatPrice(h.Price))
	}

	sb.WriteString(`

HƯỚNG DẪN TƯ VẤN:
- Khi khách hỏi về brands: trả lời chính xác số lượng và tên các thương hiệu tai nghe
- Khi khách hỏi về types: nói về các loại tai nghe có sẵn (bluetooth, wireless, headphones)
- Khi khách hỏi về tai nghe: mô tả chi tiết từng tai nghe trong kho
- Luôn dựa vào dữ liệu thực, không bịa đặt
`)
	return sb.String()
}

func formatHistory(history []models.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > historyPromptTurns {
		history = history[len(history)-historyPromptTurns:]
	}

	var sb strings.Builder
	sb.WriteString("\nLỊCH SỬ HỘI THOẠI:\n")
	for _, msg := range history {
		label := "Trợ lý"
		if msg.IsFromUser() {
			label = "Khách hàng"
		}
		sb.WriteString(label + ": " + msg.Content + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func joinBrandNames(brands []models.Brand) string {
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	return strings.Join(names, ", ")
}

func joinTypeNames(types []models.ProductType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

// formatPrice renders a VND amount with digit grouping; zero means the
// catalog has no price listed.
func formatPrice(price int) string {
	if price == 0 {
		return "Liên hệ"
	}
	return pricePrinter.Sprintf("%dđ", price)
}

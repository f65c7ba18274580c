package chatbot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports a completion that carried no usable JSON.
// Raw keeps the full completion so the user can see what the model said.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return e.Reason + ":\n" + e.Raw
}

// ValidationError reports a well-formed operation with an unusable shape,
// such as an empty payload or an unknown action.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type envelope struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
	ID       string `json:"id"`
	Data     any    `json:"data"`
	Items    any    `json:"items"`
}

// ParseOperation turns a raw model completion into a typed CRUD operation.
// Models wrap JSON in prose, code fences, trailing commas and comment
// lines; each is stripped or repaired before the strict decode.
func ParseOperation(completion string) (Operation, error) {
	cleaned := stripCodeFences(strings.TrimSpace(completion))

	jsonStr, ok := extractBalancedObject(cleaned)
	if !ok {
		if !strings.Contains(cleaned, "{") {
			return nil, &MalformedResponseError{Reason: "Không tìm thấy JSON object trong response", Raw: completion}
		}
		return nil, &MalformedResponseError{Reason: "JSON không đóng đủ dấu ngoặc", Raw: completion}
	}

	jsonStr = repairTrailingCommas(jsonStr)

	var env envelope
	if err := json.Unmarshal([]byte(jsonStr), &env); err != nil {
		// second chance: drop // comment lines the model slipped in
		if err2 := json.Unmarshal([]byte(dropCommentLines(jsonStr)), &env); err2 != nil {
			return nil, &MalformedResponseError{Reason: "JSON không hợp lệ từ AI (" + err.Error() + ")", Raw: completion}
		}
	}

	data, _ := env.Data.(map[string]any)
	items := toItemList(env.Items)

	// models sometimes put the bulk array under "data"
	if env.Action == "create_bulk" && items == nil {
		if arr, isArr := env.Data.([]any); isArr {
			items = toItemList(arr)
			data = nil
		}
	}

	stripServerFields(data)
	for _, item := range items {
		stripServerFields(item)
	}

	resource := Resource(env.Resource)

	switch env.Action {
	case "create", "update":
		if data == nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Lỗi: 'data' phải là object {} cho action '%s'. Nếu bạn muốn tạo nhiều sản phẩm, hãy dùng action 'create_bulk' với 'items': []", env.Action)}
		}
		if len(data) == 0 {
			return nil, &ValidationError{Message: fmt.Sprintf("Lỗi: 'data' không được rỗng cho action '%s'", env.Action)}
		}
		if env.Action == "create" {
			return CreateOp{Resource: resource, Data: data}, nil
		}
		return UpdateOp{Resource: resource, ID: env.ID, Data: data}, nil
	case "read":
		return ReadOp{Resource: resource, ID: env.ID}, nil
	case "delete":
		return DeleteOp{Resource: resource, ID: env.ID}, nil
	case "create_bulk":
		if items == nil {
			return nil, &ValidationError{Message: "Lỗi: 'items' phải là array [] cho action 'create_bulk'"}
		}
		if len(items) == 0 {
			return nil, &ValidationError{Message: "Lỗi: 'items' không được rỗng cho action 'create_bulk'"}
		}
		return BulkCreateOp{Resource: resource, Items: items}, nil
	default:
		return nil, &ValidationError{Message: "Hành động hoặc resource CRUD không hợp lệ."}
	}
}

func stripCodeFences(s string) string {
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		if i := strings.LastIndex(s, "\n"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// extractBalancedObject returns the substring from the first "{" to its
// matching "}", ignoring any prose around it.
func extractBalancedObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func repairTrailingCommas(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",\n}", "\n}")
	s = strings.ReplaceAll(s, ", }", " }")
	s = strings.ReplaceAll(s, ",}", "}")
	return s
}

func dropCommentLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func toItemList(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, isMap := el.(map[string]any); isMap {
			items = append(items, m)
		}
	}
	return items
}

// stripServerFields drops id and slug, which the server always assigns.
func stripServerFields(m map[string]any) {
	if m == nil {
		return
	}
	delete(m, "id")
	delete(m, "slug")
}

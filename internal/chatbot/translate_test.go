package chatbot

import (
	"errors"
	"testing"
)

func TestParseOperation_FencedJSONWithTrailingComma(t *testing.T) {
	completion := "```json\n{\n  \"action\": \"create\",\n  \"resource\": \"brand\",\n  \"data\": {\"name\": \"Sony\"},\n}\n```"

	op, err := ParseOperation(completion)
	if err != nil {
		t.Fatalf("ParseOperation: %v", err)
	}
	create, ok := op.(CreateOp)
	if !ok {
		t.Fatalf("got %T, want CreateOp", op)
	}
	if create.Resource != ResourceBrand {
		t.Fatalf("resource = %q, want brand", create.Resource)
	}
	if create.Data["name"] != "Sony" {
		t.Fatalf("data = %v", create.Data)
	}
}

func TestParseOperation_JSONBuriedInProse(t *testing.T) {
	completion := `Sure! Here is the operation you asked for:
{"action": "read", "resource": "headphone", "id": "abc-123"}
Let me know if you need anything else (really).`

	op, err := ParseOperation(completion)
	if err != nil {
		t.Fatalf("ParseOperation: %v", err)
	}
	read, ok := op.(ReadOp)
	if !ok {
		t.Fatalf("got %T, want ReadOp", op)
	}
	if read.ID != "abc-123" {
		t.Fatalf("id = %q", read.ID)
	}
}

func TestParseOperation_CommentLinesDropped(t *testing.T) {
	completion := `{
  // creating the requested type
  "action": "create",
  "resource": "type",
  "data": {"name": "Gaming"}
}`

	op, err := ParseOperation(completion)
	if err != nil {
		t.Fatalf("ParseOperation: %v", err)
	}
	if _, ok := op.(CreateOp); !ok {
		t.Fatalf("got %T, want CreateOp", op)
	}
}

func TestParseOperation_BulkDataArrayAlias(t *testing.T) {
	completion := `{"action": "create_bulk", "resource": "brand", "data": [{"name": "JBL"}, {"name": "Bose"}]}`

	op, err := ParseOperation(completion)
	if err != nil {
		t.Fatalf("ParseOperation: %v", err)
	}
	bulk, ok := op.(BulkCreateOp)
	if !ok {
		t.Fatalf("got %T, want BulkCreateOp", op)
	}
	if len(bulk.Items) != 2 || bulk.Items[1]["name"] != "Bose" {
		t.Fatalf("items = %v", bulk.Items)
	}
}

func TestParseOperation_StripsServerAssignedFields(t *testing.T) {
	completion := `{"action": "create", "resource": "brand", "data": {"name": "Asus", "id": "x", "slug": "asus"}}`

	op, err := ParseOperation(completion)
	if err != nil {
		t.Fatalf("ParseOperation: %v", err)
	}
	create := op.(CreateOp)
	if _, hasID := create.Data["id"]; hasID {
		t.Fatal("id should be stripped")
	}
	if _, hasSlug := create.Data["slug"]; hasSlug {
		t.Fatal("slug should be stripped")
	}
}

func TestParseOperation_NoJSONObject(t *testing.T) {
	_, err := ParseOperation("Xin lỗi, tôi không hiểu yêu cầu.")
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestParseOperation_UnbalancedBraces(t *testing.T) {
	_, err := ParseOperation(`{"action": "create", "resource": "brand"`)
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestParseOperation_ShapeValidation(t *testing.T) {
	cases := []struct {
		name       string
		completion string
	}{
		{"create with array data", `{"action": "create", "resource": "brand", "data": [{"name": "X"}]}`},
		{"create with empty data", `{"action": "create", "resource": "brand", "data": {}}`},
		{"bulk without items", `{"action": "create_bulk", "resource": "brand"}`},
		{"bulk with empty items", `{"action": "create_bulk", "resource": "brand", "items": []}`},
		{"unknown action", `{"action": "upsert", "resource": "brand", "data": {"name": "X"}}`},
	}
	for _, tc := range cases {
		_, err := ParseOperation(tc.completion)
		var invalid *ValidationError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

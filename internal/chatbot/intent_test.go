package chatbot

import "testing"

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"Tạo brand Sony", IntentManagement},
		{"thêm tai nghe AirPods của Apple", IntentManagement},
		{"Xem danh sách tai nghe trong kho", IntentManagement},
		{"delete headphone abc", IntentManagement},
		{"cập nhật giá tai nghe", IntentManagement},
		{"Tư vấn cho mình tai nghe nghe nhạc", IntentAdvisory},
		{"recommend something for running", IntentAdvisory},
		{"Mình muốn mua tai nghe chống ồn", IntentAdvisory},
		{"Ngân sách 2 triệu thì nên lấy con nào", IntentAdvisory},
		{"Xin chào", IntentGeneral},
		{"Cửa hàng mở cửa lúc mấy giờ", IntentGeneral},
	}
	for _, tc := range cases {
		if got := DetectIntent(tc.message); got != tc.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestDetectIntent_ManagementWinsOverAdvisory(t *testing.T) {
	// mentions both a CRUD verb and a price keyword
	msg := "Tạo tai nghe gaming giá 500000"
	if got := DetectIntent(msg); got != IntentManagement {
		t.Fatalf("DetectIntent(%q) = %q, want management", msg, got)
	}
}

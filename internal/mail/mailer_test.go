package mail

import (
	"strings"
	"testing"
)

func TestRenderOTPBody_ContainsNameAndCode(t *testing.T) {
	body, err := renderOTPBody("John", "482916")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(body, "Hello John!") {
		t.Errorf("expected greeting with recipient name, got:\n%s", body)
	}
	if !strings.Contains(body, "482916") {
		t.Errorf("expected body to contain the code, got:\n%s", body)
	}
	if !strings.Contains(body, "expire in 10 minutes") {
		t.Errorf("expected expiry notice, got:\n%s", body)
	}
}

func TestRenderOTPBody_EscapesName(t *testing.T) {
	body, err := renderOTPBody(`<script>alert("x")</script>`, "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Errorf("expected recipient name to be HTML-escaped, got:\n%s", body)
	}
}

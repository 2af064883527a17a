package htmlform

import (
	"strings"
	"testing"
)

// TestExtract tests form extraction from HTML documents.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("no forms", func(t *testing.T) {
		t.Parallel()

		forms, err := Extract("<html><body><p>hello</p></body></html>")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(forms) != 0 {
			t.Errorf("got %d forms, expected 0", len(forms))
		}
	})

	t.Run("actions are kept as written", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
<form action="/search"><input name="q"></form>
<form action=" https://evil-other.com/collect " method="post">
  <input name="user" type="text">
  <input name="pass" type="password">
</form>
<form><textarea name="msg"></textarea></form>
</body></html>`

		forms, err := Extract(body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(forms) != 3 {
			t.Fatalf("got %d forms, expected 3", len(forms))
		}

		expectedActions := []string{"/search", "https://evil-other.com/collect", ""}
		for i, expected := range expectedActions {
			if forms[i].Action != expected {
				t.Errorf("form %d: got action %q, expected %q", i, forms[i].Action, expected)
			}
		}
		if forms[1].Method != "POST" {
			t.Errorf("got method %q, expected POST", forms[1].Method)
		}
		if forms[0].Method != "GET" {
			t.Errorf("got method %q, expected GET default", forms[0].Method)
		}
		if !forms[1].HasPasswordField() {
			t.Error("expected password field to be detected")
		}
		if forms[0].HasPasswordField() {
			t.Error("did not expect password field in search form")
		}
		if len(forms[2].Fields) != 1 || forms[2].Fields[0].Type != "textarea" {
			t.Errorf("got fields %+v, expected one textarea", forms[2].Fields)
		}
	})

	t.Run("malformed markup still yields forms", func(t *testing.T) {
		t.Parallel()

		forms, err := Extract(`<div><form action="https://a.example/x"><input name=a`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(forms) != 1 || forms[0].Action != "https://a.example/x" {
			t.Errorf("got %+v", forms)
		}
	})

	t.Run("unnamed controls are skipped", func(t *testing.T) {
		t.Parallel()

		forms, err := Parse(strings.NewReader(`<form action="/go"><input type="submit"><select name="s"></select></form>`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(forms[0].Fields) != 1 || forms[0].Fields[0].Type != "select" {
			t.Errorf("got fields %+v, expected only the select", forms[0].Fields)
		}
	})
}

package account

import "testing"

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Fatalf("unexpected normalized email: %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@x.com", "jane.doe@corp.example.org"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}
	invalid := []string{"", "plain", "no@tld", "two@@x.com", "spa ce@x.com"}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestPasswordIssues(t *testing.T) {
	if issues := PasswordIssues("Passw0rd"); len(issues) != 0 {
		t.Fatalf("expected strong password, got issues %v", issues)
	}
	if issues := PasswordIssues("short1A"); len(issues) != 1 {
		t.Fatalf("expected length issue only, got %v", issues)
	}
	if issues := PasswordIssues("alllowercase"); len(issues) != 2 {
		t.Fatalf("expected missing uppercase and digit, got %v", issues)
	}
	if issues := PasswordIssues(""); len(issues) != 4 {
		t.Fatalf("expected all four issues, got %v", issues)
	}
}

package user_test

import (
	"testing"

	"github.com/merrickb/recipebox/internal/domain/user"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{name: "lowercase_domain", email: "test1@TEST.com", want: "test1@test.com"},
		{name: "local_part_preserved", email: "Test2@Test.com", want: "Test2@test.com"},
		{name: "uppercase_local_kept", email: "TEST3@TEST.COM", want: "TEST3@test.com"},
		{name: "already_normalized", email: "test@test.com", want: "test@test.com"},
		{name: "no_at_sign_unchanged", email: "not-an-email", want: "not-an-email"},
		{name: "empty", email: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := user.NormalizeEmail(tt.email)

			if got != tt.want {
				t.Fatalf("NormalizeEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

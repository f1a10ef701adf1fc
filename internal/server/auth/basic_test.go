package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
)

func TestStripBasicPrefix(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", ""},
		{"basic abc", ""}, // prefix is case-sensitive
		{"Basic abc", "abc"},
		{"Basic   abc  ", "abc"},
	}
	for _, tt := range tests {
		if got := stripBasicPrefix(tt.header); got != tt.want {
			t.Fatalf("stripBasicPrefix(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestDecodeCredentials(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("a@x.com:pw"))
	invalidUTF8 := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe})

	tests := []struct {
		token string
		want  string
	}{
		{"", ""},
		{"%%%not-base64%%%", ""},
		{invalidUTF8, ""},
		{valid, "a@x.com:pw"},
	}
	for _, tt := range tests {
		if got := decodeCredentials(tt.token); got != tt.want {
			t.Fatalf("decodeCredentials(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestSplitCredentials(t *testing.T) {
	tests := []struct {
		decoded   string
		wantEmail string
		wantPwd   string
	}{
		{"", "", ""},
		{"no-separator", "", ""},
		{"a@x.com:pw", "a@x.com", "pw"},
		// only the first ':' separates; the password keeps the rest
		{"a@x.com:pw:with:colons", "a@x.com", "pw:with:colons"},
	}
	for _, tt := range tests {
		email, pwd := splitCredentials(tt.decoded)
		if email != tt.wantEmail || pwd != tt.wantPwd {
			t.Fatalf("splitCredentials(%q) = (%q, %q), want (%q, %q)",
				tt.decoded, email, pwd, tt.wantEmail, tt.wantPwd)
		}
	}
}

// ---- ResolveIdentity ----

type fakeUserRepo struct {
	users.Repository

	byEmail map[string]*models.User
	err     error
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func basicRequest(t *testing.T, header string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func basicHeader(email, pwd string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+pwd))
}

func TestBasicResolveIdentity(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	alice := &models.User{ID: "u1", Email: "alice@example.com", PasswordHash: hash}
	repo := &fakeUserRepo{byEmail: map[string]*models.User{"alice@example.com": alice}}
	a := NewBasicAuthenticator(repo, hasher)
	ctx := context.Background()

	t.Run("valid credentials resolve", func(t *testing.T) {
		got, err := a.ResolveIdentity(ctx, basicRequest(t, basicHeader("alice@example.com", "secret")))
		if err != nil || got == nil || got.ID != "u1" {
			t.Fatalf("got (%+v, %v)", got, err)
		}
	})

	t.Run("wrong password is indistinguishable from unknown email", func(t *testing.T) {
		wrong, err := a.ResolveIdentity(ctx, basicRequest(t, basicHeader("alice@example.com", "nope")))
		if err != nil || wrong != nil {
			t.Fatalf("wrong password: got (%+v, %v)", wrong, err)
		}
		unknown, err := a.ResolveIdentity(ctx, basicRequest(t, basicHeader("ghost@example.com", "secret")))
		if err != nil || unknown != nil {
			t.Fatalf("unknown email: got (%+v, %v)", unknown, err)
		}
	})

	t.Run("missing Basic prefix", func(t *testing.T) {
		token := base64.StdEncoding.EncodeToString([]byte("alice@example.com:secret"))
		got, err := a.ResolveIdentity(ctx, basicRequest(t, token))
		if err != nil || got != nil {
			t.Fatalf("got (%+v, %v)", got, err)
		}
	})

	t.Run("invalid base64 does not error", func(t *testing.T) {
		got, err := a.ResolveIdentity(ctx, basicRequest(t, "Basic %%%broken%%%"))
		if err != nil || got != nil {
			t.Fatalf("got (%+v, %v)", got, err)
		}
	})

	t.Run("no header", func(t *testing.T) {
		got, err := a.ResolveIdentity(ctx, basicRequest(t, ""))
		if err != nil || got != nil {
			t.Fatalf("got (%+v, %v)", got, err)
		}
	})

	t.Run("nil request", func(t *testing.T) {
		got, err := a.ResolveIdentity(ctx, nil)
		if err != nil || got != nil {
			t.Fatalf("got (%+v, %v)", got, err)
		}
	})

	t.Run("password containing colons", func(t *testing.T) {
		hashColon, err := hasher.Hash("p:w:d")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		repo.byEmail["bob@example.com"] = &models.User{ID: "u2", Email: "bob@example.com", PasswordHash: hashColon}

		got, err := a.ResolveIdentity(ctx, basicRequest(t, basicHeader("bob@example.com", "p:w:d")))
		if err != nil || got == nil || got.ID != "u2" {
			t.Fatalf("got (%+v, %v)", got, err)
		}
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		broken := NewBasicAuthenticator(&fakeUserRepo{err: errors.New("db down")}, hasher)
		_, err := broken.ResolveIdentity(ctx, basicRequest(t, basicHeader("alice@example.com", "secret")))
		if err == nil {
			t.Fatal("expected storage error")
		}
	})
}

package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	a "github.com/you/padel-booking/pkg/auth"
)

const testJWTSecret = "test-secret"

func newAuthRig(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(testJWTSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": currentUserID(c)})
	})
	r.GET("/admin", JWTAuth(testJWTSecret), RequireRole("OWNER", "ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	r := newAuthRig(t)

	if rec := get(r, "/me", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d, want 401", rec.Code)
	}
	if rec := get(r, "/me", "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: %d, want 401", rec.Code)
	}

	tok, err := a.CreateAccessToken(testJWTSecret, "u1", "USER", "u1@example.com", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if rec := get(r, "/me", tok); rec.Code != http.StatusOK {
		t.Errorf("valid token: %d, want 200", rec.Code)
	}

	expired, err := a.CreateAccessToken(testJWTSecret, "u1", "USER", "u1@example.com", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if rec := get(r, "/me", expired); rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token: %d, want 401", rec.Code)
	}

	wrongKey, err := a.CreateAccessToken("other-secret", "u1", "USER", "u1@example.com", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if rec := get(r, "/me", wrongKey); rec.Code != http.StatusUnauthorized {
		t.Errorf("token signed with the wrong key: %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthRig(t)

	user, _ := a.CreateAccessToken(testJWTSecret, "u1", "USER", "", time.Minute)
	if rec := get(r, "/admin", user); rec.Code != http.StatusForbidden {
		t.Errorf("USER on admin route: %d, want 403", rec.Code)
	}

	owner, _ := a.CreateAccessToken(testJWTSecret, "o1", "OWNER", "", time.Minute)
	if rec := get(r, "/admin", owner); rec.Code != http.StatusOK {
		t.Errorf("OWNER on admin route: %d, want 200", rec.Code)
	}
}

func TestRespondErrMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
		kind string
	}{
		{fmt.Errorf("%w: bad date", domain.ErrValidation), http.StatusBadRequest, "validation"},
		{domain.ErrSlotConflict, http.StatusConflict, "slot_conflict"},
		{domain.ErrIdempotencyConflict, http.StatusConflict, "idempotency_conflict"},
		{fmt.Errorf("%w: dial refused", domain.ErrAvailabilityUnknown), http.StatusServiceUnavailable, "availability_unknown"},
		{domain.ErrPayment, http.StatusBadGateway, "payment"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, c := range cases {
		t.Run(c.kind, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			respondErr(ctx, c.err)
			if rec.Code != c.code {
				t.Errorf("code = %d, want %d", rec.Code, c.code)
			}
		})
	}
}

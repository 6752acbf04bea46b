package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"food-donation-api-server/internal/auth"
	"food-donation-api-server/internal/models"
	"food-donation-api-server/internal/store"
)

func newAccountRouter(s *store.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth.JwtSecret = []byte("test-secret")
	handler := &AccountHandler{
		Donors:        store.DonorView{MemoryStore: s},
		Ngos:          store.NgoView{MemoryStore: s},
		Admins:        store.AdminView{MemoryStore: s},
		JWTExpiration: time.Hour,
	}
	router := gin.New()
	router.POST("/auth/donor/register", handler.RegisterDonor)
	router.POST("/auth/ngo/register", handler.RegisterNgo)
	router.POST("/auth/login", handler.Login)
	return router
}

func TestRegisterDonor(t *testing.T) {
	s := store.NewMemoryStore()
	router := newAccountRouter(s)

	payload := gin.H{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "longenoughpw",
		"city":     "Pune",
	}

	w := performJSON(router, http.MethodPost, "/auth/donor/register", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	saved, err := store.DonorView{MemoryStore: s}.FindByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("donor not stored: %v", err)
	}
	if saved.Password == "longenoughpw" {
		t.Error("password stored in plain text")
	}

	// Same email again is a conflict.
	w = performJSON(router, http.MethodPost, "/auth/donor/register", payload)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate registration status = %d, want 409", w.Code)
	}
}

func TestRegisterDonor_RejectsShortPassword(t *testing.T) {
	router := newAccountRouter(store.NewMemoryStore())

	w := performJSON(router, http.MethodPost, "/auth/donor/register", gin.H{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	s := store.NewMemoryStore()
	router := newAccountRouter(s)

	hash, err := auth.HashPassword("longenoughpw")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if _, err := (store.DonorView{MemoryStore: s}).Insert(context.Background(), &models.Donor{
		Name: "Asha", Email: "asha@example.com", Password: hash,
	}); err != nil {
		t.Fatalf("InsertDonor failed: %v", err)
	}
	if _, err := s.InsertAdmin(context.Background(), &models.Admin{
		Name: "Platform Admin", Email: "admin@example.com", Password: hash,
	}); err != nil {
		t.Fatalf("InsertAdmin failed: %v", err)
	}

	tests := []struct {
		name     string
		payload  gin.H
		wantCode int
	}{
		{
			"donor ok",
			gin.H{"email": "asha@example.com", "password": "longenoughpw", "role": "donor"},
			http.StatusOK,
		},
		{
			"admin ok",
			gin.H{"email": "admin@example.com", "password": "longenoughpw", "role": "admin"},
			http.StatusOK,
		},
		{
			"wrong password",
			gin.H{"email": "asha@example.com", "password": "wrongpassword", "role": "donor"},
			http.StatusUnauthorized,
		},
		{
			"unknown ngo",
			gin.H{"email": "asha@example.com", "password": "longenoughpw", "role": "ngo"},
			http.StatusUnauthorized,
		},
		{
			"bad role",
			gin.H{"email": "asha@example.com", "password": "longenoughpw", "role": "superuser"},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/auth/login", tt.payload)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				body := decodeBody(t, w)
				if body["token"] == nil || body["token"] == "" {
					t.Error("response missing token")
				}
			}
		})
	}
}

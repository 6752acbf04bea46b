package handlers

import (
	"context"
	"net/http"
	"time"

	"food-donation-api-server/internal/auth"
	"food-donation-api-server/internal/models"
	"food-donation-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	Donors        store.DonorStore
	Ngos          store.NgoStore
	Admins        store.AdminStore
	JWTExpiration time.Duration
}

type RegisterDonorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

type RegisterNgoRequest struct {
	NgoName     string `json:"ngoName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"` // "donor", "ngo" or "admin"
}

func (h *AccountHandler) RegisterDonor(c *gin.Context) {
	var req RegisterDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Donors.FindByEmail(context.Background(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Donor with this email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	donor := &models.Donor{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		CreatedAt: time.Now(),
	}

	saved, err := h.Donors.Insert(context.Background(), donor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donor"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (h *AccountHandler) RegisterNgo(c *gin.Context) {
	var req RegisterNgoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Ngos.FindByEmail(context.Background(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "NGO with this email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	ngo := &models.Ngo{
		NgoName:     req.NgoName,
		Email:       req.Email,
		Password:    hashedPassword,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	saved, err := h.Ngos.Insert(context.Background(), ngo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create NGO"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		userID string
		hash   string
	)

	switch req.Role {
	case auth.RoleDonor:
		donor, err := h.Donors.FindByEmail(context.Background(), req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		userID, hash = donor.ID.Hex(), donor.Password
	case auth.RoleNgo:
		ngo, err := h.Ngos.FindByEmail(context.Background(), req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		userID, hash = ngo.ID.Hex(), ngo.Password
	case auth.RoleAdmin:
		if h.Admins == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		admin, err := h.Admins.FindByEmail(context.Background(), req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		userID, hash = admin.ID.Hex(), admin.Password
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be donor, ngo or admin"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, hash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(userID, req.Email, req.Role, h.JWTExpiration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"userID": userID,
		"role":   req.Role,
	})
}

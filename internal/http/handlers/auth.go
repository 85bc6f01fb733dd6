package handlers

import (
	"net/http"
	"strings"
	"time"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte("super-secret-key-change-me")

// SetJWTSecret overrides the signing key from the environment at startup.
func SetJWTSecret(secret string) {
	if strings.TrimSpace(secret) != "" {
		jwtSecret = []byte(secret)
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"` // legacy field name, same semantics
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	login := strings.TrimSpace(req.Login)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}

	repo := repositories.UserRepo{}
	user, hash, err := repo.GetByLogin(login)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "email/username atau password salah")
			return
		}
		RespondDomainError(c, err)
		return
	}
	if user.Status != "active" {
		RespondError(c, http.StatusUnauthorized, "akun tidak aktif")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "email/username atau password salah")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat token")
		return
	}

	Respond(c, http.StatusOK, "login berhasil", gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Username) == "" || len(req.Password) < 8 {
		RespondDomainError(c, domain.ValidationError{
			Field: "password",
			Msg:   "nama, username, email wajib diisi dan password minimal 8 karakter",
		})
		return
	}

	repo := repositories.UserRepo{}
	exists, err := repo.Exists(req.Email, req.Username)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	if exists {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "email atau username sudah terdaftar"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal meng-hash password")
		return
	}

	id, err := repo.Insert(req.Name, req.Username, req.Email, req.Phone, string(hash), "user")
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	Respond(c, http.StatusCreated, "registrasi berhasil", gin.H{
		"id":       id,
		"name":     req.Name,
		"username": req.Username,
		"email":    req.Email,
		"phone":    req.Phone,
		"role":     "user",
		"status":   "active",
	})
}

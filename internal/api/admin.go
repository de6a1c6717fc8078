package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/commerceblock/mainstay-api/internal/logger"
)

const adminTokenTTL = 15 * time.Minute

func jwtKey() []byte {
	secret := viper.GetString("jwt_secret")
	if secret == "" {
		return nil
	}
	return []byte(secret)
}

// HandleAdminLogin serves POST /admin/login, checking the configured admin
// credentials and issuing a short-lived session token.
func (a *API) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Cannot parse JSON", http.StatusBadRequest)
		return
	}

	adminUser := viper.GetString("admin_user")
	passwordHash := viper.GetString("admin_password_hash")
	if passwordHash == "" || jwtKey() == nil {
		http.Error(w, "Admin access not configured", http.StatusInternalServerError)
		return
	}

	userMatch := subtle.ConstantTimeCompare([]byte(adminUser), []byte(req.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password))
	if !userMatch || passErr != nil {
		http.Error(w, "Unauthorized: Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := generateAdminJWT(req.Username)
	if err != nil {
		logger.Error("failed to sign admin token:", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func generateAdminJWT(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// JWTMiddleware guards admin routes with the bearer token issued at login.
func (a *API) JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: Authorization header missing", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Unauthorized: Invalid token format", http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return jwtKey(), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// HandleAdminClientDetails serves GET /admin/clientdetails: the registered
// client roster for the admin UI.
func (a *API) HandleAdminClientDetails(w http.ResponseWriter, r *http.Request) {
	clients, err := a.clients.All()
	if err != nil {
		logger.Error("failed to list client details:", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "api", Message: err.Error()})
		return
	}

	rows := make([]ClientDetailsRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, ClientDetailsRow{
			Position:   c.ClientPosition,
			ClientName: c.ClientName,
			Pubkey:     c.Pubkey,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

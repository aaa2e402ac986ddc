package endpoints

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/http/api"
	"github.com/waktusolat/solat-api/internal/http/api/admin/packets"
	"github.com/waktusolat/solat-api/internal/http/middleware"
)

// AuthPublicModule mounts the public login endpoint (/auth/login)
func AuthPublicModule(jwtSecret, username, passwordHash string) api.Module {
	ctl := newAccountManager(jwtSecret, username, passwordHash)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.adminLogin)
	})
}

// AccountManager checks the single configured admin account.
type AccountManager struct {
	jwtSecret    string
	username     string
	passwordHash string
}

func newAccountManager(secret, username, passwordHash string) *AccountManager {
	return &AccountManager{jwtSecret: secret, username: username, passwordHash: passwordHash}
}

// POST /admin/auth/login
func (a *AccountManager) adminLogin(ctx *gin.Context) (any, *api.Error) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	userOK := subtle.ConstantTimeCompare([]byte(request.Username), []byte(a.username)) == 1
	passOK := middleware.CheckPassword(a.passwordHash, request.Password)
	if !userOK || !passOK {
		log.Warn().Str("username", request.Username).Msg("admin login rejected")
		return nil, &api.Error{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(a.username, a.jwtSecret)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.LoginResponse{Token: token}, nil
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/notify"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Session *session.Session
	Center  *notify.Center
}

func NewAuthHandler(auth *services.AuthService, sess *session.Session, center *notify.Center) *AuthHandler {
	return &AuthHandler{Auth: auth, Session: sess, Center: center}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.Session.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", viewData(h.Session, h.Center, gin.H{"Title": "Login"}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.Auth.Login(c.Request.Context(), email, password)
	if err != nil {
		// form-shape failures never reached the network and carry no toast
		// of their own yet
		if errors.Is(err, services.ErrBadEmail) || errors.Is(err, services.ErrEmptyPassword) {
			h.Center.Push(notify.LevelError, err.Error())
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.Center.Push(notify.LevelSuccess, "Login successful!")
	log.Printf("[auth][login] user=%d", user.ID)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Auth.Logout()
	h.Center.Push(notify.LevelSuccess, "Logged out successfully")
	c.Redirect(http.StatusFound, "/login")
}

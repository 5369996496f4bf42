package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/repository"
)

// HomeHandler serves the landing page. The home route is ungated but
// still shows who is logged in, so it does its own session lookup.
type HomeHandler struct {
	Store *sessions.CookieStore
	Users *repository.UserRepository
}

func (h *HomeHandler) ShowHomePage(c *gin.Context) {
	user, isLoggedIn := userFromSession(c, h.Store, h.Users)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":       user,
		"IsLoggedIn": isLoggedIn,
	})
}

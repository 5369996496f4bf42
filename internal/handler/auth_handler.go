package handler

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/model"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/repository"
)

// SessionName is the cookie under which the session travels.
const SessionName = "supermarket-session"

// RegistrationForm is the one-shot echo of a rejected registration,
// flashed so the form re-renders with the submitted values intact.
type RegistrationForm struct {
	Username string
	Email    string
	Password string
	Address  string
	Contact  string
	Role     string
}

func init() {
	// Session values ride a securecookie, which gob-encodes them.
	gob.Register(RegistrationForm{})
}

type AuthHandler struct {
	Store *sessions.CookieStore
	Users *repository.UserRepository
}

// userFromSession resolves the session's user id back to a live row.
// A missing id or a deleted user both count as "not logged in".
func userFromSession(c *gin.Context, store *sessions.CookieStore, users *repository.UserRepository) (model.User, bool) {
	session, _ := store.Get(c.Request, SessionName)
	userID, ok := session.Values["userID"].(uint)
	if !ok {
		return model.User{}, false
	}

	user, err := users.GetByID(userID)
	if err != nil {
		return model.User{}, false
	}
	return *user, true
}

// ShowRegisterPage renders the registration form with any flashed
// errors and the echoed form data from a failed attempt.
func (h *AuthHandler) ShowRegisterPage(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	flashesError := session.Flashes("error")

	var form RegistrationForm
	if flashed := session.Flashes("formData"); len(flashed) > 0 {
		if f, ok := flashed[0].(RegistrationForm); ok {
			form = f
		}
	}

	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("WARNING: failed to save session in ShowRegisterPage: %v\n", err)
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"FlashesError": flashesError,
		"Form":         form,
	})
}

// ProcessRegisterForm validates and creates a new user. All six fields
// are required; the password must be at least 6 characters. Email
// uniqueness is left to the store's constraint, so a duplicate email
// surfaces as a store error here, not as a validation failure.
func (h *AuthHandler) ProcessRegisterForm(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	address := c.PostForm("address")
	contact := c.PostForm("contact")
	role := c.PostForm("role")

	if username == "" || email == "" || password == "" || address == "" || contact == "" || role == "" {
		c.String(http.StatusBadRequest, "All fields are required.")
		return
	}

	if len(password) < 6 {
		session.AddFlash("Password should be at least 6 or more characters long", "error")
		session.AddFlash(RegistrationForm{
			Username: username,
			Email:    email,
			Password: password,
			Address:  address,
			Contact:  contact,
			Role:     role,
		}, "formData")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		session.AddFlash("Error processing the password. Please try again.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	newUser := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Address:      address,
		Contact:      contact,
		Role:         role,
	}

	if err := h.Users.Create(&newUser); err != nil {
		log.Printf("Error registering user: %v", err)
		c.String(http.StatusInternalServerError, "Error registering user")
		return
	}

	session.AddFlash("Registration successful! Please log in.", "success")
	session.Save(c.Request, c.Writer)
	c.Redirect(http.StatusFound, "/login")
}

// ShowLoginPage renders the login form with flashed messages.
func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	flashesSuccess := session.Flashes("success")
	flashesError := session.Flashes("error")
	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("WARNING: failed to save session in ShowLoginPage: %v\n", err)
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"FlashesSuccess": flashesSuccess,
		"FlashesError":   flashesError,
	})
}

// ProcessLoginForm authenticates the user and establishes the session.
// Admins land on the inventory, everyone else on the shopping page.
func (h *AuthHandler) ProcessLoginForm(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		session.AddFlash("All fields are required.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.Users.GetByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		session.AddFlash("Invalid email or password.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		session.AddFlash("An internal error occurred. Please try again.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		session.AddFlash("Invalid email or password.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session.Values["userID"] = user.ID
	session.Values["userName"] = user.Username
	session.Values["userRole"] = user.Role
	session.AddFlash("Login successful!", "success")

	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("ERROR saving login session: %v\n", err)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if user.Role == model.RoleUser {
		c.Redirect(http.StatusFound, "/shopping")
	} else {
		c.Redirect(http.StatusFound, "/inventory")
	}
}

// Logout destroys the session and sends the browser home. Logging out
// with no active session is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	session.Values["userID"] = nil
	session.Values["userName"] = nil
	session.Values["userRole"] = nil

	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("Error saving logout session: %v\n", err)
		c.String(http.StatusInternalServerError, "Error logging out.")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// AuthRequired forwards requests that carry a valid session identity
// and redirects everyone else to the login page.
func (h *AuthHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromSession(c, h.Store, h.Users)
		if !ok {
			session, _ := h.Store.Get(c.Request, SessionName)
			session.AddFlash("Please log in to view this resource", "error")
			session.Save(c.Request, c.Writer)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AdminRequired is a composed gate: it re-checks authentication itself
// before the role check, so a route that forgets AuthRequired cannot
// reach the role check with no identity. Non-admins are sent to the
// shopping page.
func (h *AuthHandler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromSession(c, h.Store, h.Users)
		if !ok {
			session, _ := h.Store.Get(c.Request, SessionName)
			session.AddFlash("Please log in to view this resource", "error")
			session.Save(c.Request, c.Writer)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if user.Role != model.RoleAdmin {
			session, _ := h.Store.Get(c.Request, SessionName)
			session.AddFlash("Access denied", "error")
			session.Save(c.Request, c.Writer)
			c.Redirect(http.StatusFound, "/shopping")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

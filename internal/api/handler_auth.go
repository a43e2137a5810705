package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yummiz/internal/config"
	"yummiz/internal/service"
	"yummiz/internal/sms"
	"yummiz/pkg/metrics"
)

const sessionCookieMaxAge = 24 * 60 * 60

type AuthHandler struct {
	authService *service.AuthService
	serverCfg   config.ServerConfig
}

func NewAuthHandler(authService *service.AuthService, serverCfg config.ServerConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		serverCfg:   serverCfg,
	}
}

// setSessionCookie attaches the token cookie; flags differ by environment.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	secure := h.serverCfg.Env == "production"
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie("token", token, sessionCookieMaxAge, "/", h.serverCfg.CookieDomain, secure, true)
}

// Register handles POST /api/user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Mobile   string `json:"mobile"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Mobile)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Email already registered"})
		case errors.Is(err, service.ErrMobileTaken):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Mobile number already registered"})
		case service.IsValidation(err):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Registration failed. Please try again."})
		}
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"name":   user.Name,
			"email":  user.Email,
			"mobile": user.Mobile,
		},
		"message": "User registered successfully",
	})
}

// Login handles POST /api/user/login. A password logs the user in
// directly; a bare mobile number starts the OTP path instead.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Mobile   string `json:"mobile"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	if req.Password != "" {
		user, token, err := h.authService.LoginWithPassword(c.Request.Context(), req.Email, req.Mobile, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserNotFound):
				c.JSON(http.StatusOK, gin.H{"success": false, "message": "User doesn't exist"})
			case errors.Is(err, service.ErrInvalidCredentials):
				c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid credentials"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
			}
			return
		}

		h.setSessionCookie(c, token)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"user":    gin.H{"name": user.Name, "email": user.Email},
			"message": "User logged in successfully",
		})
		return
	}

	if req.Mobile != "" {
		if err := h.authService.RequestLoginOTP(c.Request.Context(), req.Mobile); err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": false, "message": "User doesn't exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"requireOTP": true,
			"message":    "OTP sent successfully",
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password or mobile number is required"})
}

// SendOTP handles POST /api/user/send-otp (rate limited upstream).
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req struct {
		Mobile string `json:"mobile"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	if err := h.authService.SendOTP(c.Request.Context(), req.Mobile); err != nil {
		metrics.IncrementOTPRequest("failed")
		switch {
		case service.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, sms.ErrAuthFailed):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication failed with Twilio"})
		case errors.Is(err, sms.ErrInvalidNumber):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid phone number format"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		}
		return
	}

	metrics.IncrementOTPRequest("sent")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent successfully",
	})
}

// VerifyOTP handles POST /api/user/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Mobile string `json:"mobile"`
		OTP    string `json:"otp"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	user, token, err := h.authService.VerifyOTP(c.Request.Context(), req.Mobile, req.OTP)
	if err != nil {
		switch {
		case service.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, service.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP or OTP has expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify OTP"})
		}
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"name": user.Name, "mobile": user.Mobile},
		"message": "OTP verified successfully",
	})
}

// CountUsers handles GET /api/user/count
func (h *AuthHandler) CountUsers(c *gin.Context) {
	count, err := h.authService.CountUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/account"
	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/platform/config"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Accounts  *account.Service
	Employees *employee.Service
	Audit     *audit.Service
	Config    config.Config
}

func NewHandler(accounts *account.Service, employees *employee.Service, auditSvc *audit.Service, cfg config.Config) *Handler {
	return &Handler{Accounts: accounts, Employees: employees, Audit: auditSvc, Config: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/signin", h.handleSignin)
		r.Post("/verify-email", h.handleVerifyEmail)
		r.Post("/logout", h.handleLogout)
		r.With(middleware.RequireAuth).Get("/me", h.handleMe)
	})
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	HireDate  string `json:"hireDate"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload signupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "is required")
	if payload.Email != "" && !account.ValidEmail(payload.Email) {
		v.Add("email", "must be a valid email address")
	}
	for _, issue := range account.PasswordIssues(payload.Password) {
		v.Add("password", issue)
	}
	v.Required("firstName", payload.FirstName, "is required")
	v.Required("lastName", payload.LastName, "is required")

	hireDate := time.Now()
	if payload.HireDate != "" {
		parsed, ok := v.Date("hireDate", payload.HireDate)
		if ok {
			hireDate = parsed
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	acct, profile, err := h.Accounts.Signup(r.Context(), account.SignupInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		HireDate:  hireDate,
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			api.Fail(w, http.StatusConflict, "duplicate_email", "an account with this email already exists", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "signup_failed", "failed to create account", requestID)
		return
	}

	token, err := h.issueToken(acct)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}
	h.setSessionCookie(w, token)

	if err := h.Audit.Record(r.Context(), acct.ID, "account.signup", "account", acct.ID, requestID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit account.signup failed", "err", err)
	}

	api.Created(w, map[string]any{
		"token":    token,
		"account":  acct,
		"employee": profile,
	}, requestID)
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload signinRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", requestID)
		return
	}

	acct, err := h.Accounts.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "signin_failed", "failed to sign in", requestID)
		return
	}

	token, err := h.issueToken(acct)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}
	h.setSessionCookie(w, token)

	api.Success(w, map[string]any{
		"token":   token,
		"account": acct,
	}, requestID)
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

func (h *Handler) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Token == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "verification token is required", requestID)
		return
	}

	if err := h.Accounts.VerifyEmail(r.Context(), payload.Token); err != nil {
		if errors.Is(err, account.ErrTokenInvalid) || errors.Is(err, account.ErrNotFound) {
			api.Fail(w, http.StatusBadRequest, "invalid_token", "verification token is invalid or expired", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "verify_failed", "failed to verify email", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "verified"}, requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Config.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	acct, err := h.Accounts.GetByID(r.Context(), user.AccountID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "account no longer exists", requestID)
		return
	}

	response := map[string]any{"account": acct}
	if profile, err := h.Employees.GetByAccount(r.Context(), user.AccountID); err == nil {
		response["employee"] = profile
	}
	api.Success(w, response, requestID)
}

func (h *Handler) issueToken(acct account.Account) (string, error) {
	return auth.GenerateToken(h.Config.JWTSecret, auth.Claims{
		AccountID: acct.ID,
		Role:      acct.Role,
	}, h.Config.TokenTTL)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Config.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Config.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

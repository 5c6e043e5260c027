package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/inventory-service/internal/apperr"
	"github.com/iliyamo/inventory-service/internal/auth"
	"github.com/iliyamo/inventory-service/internal/metrics"
	"github.com/iliyamo/inventory-service/internal/middleware"
	"github.com/iliyamo/inventory-service/internal/queue"
	"github.com/iliyamo/inventory-service/internal/repository"
	"github.com/iliyamo/inventory-service/internal/service"
	"github.com/iliyamo/inventory-service/internal/utils"
)

// publishTimeout bounds the background event publish after registration.
const publishTimeout = 5 * time.Second

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Tokens     *auth.TokenValidator
	BcryptCost int
	Events     service.EventPublisher
	Metrics    *metrics.Metrics
	Log        *logrus.Logger
}

func NewAuthHandler(tokens *auth.TokenValidator, bcryptCost int, events service.EventPublisher,
	m *metrics.Metrics, log *logrus.Logger) *AuthHandler {
	if events == nil {
		events = service.NopPublisher{}
	}
	return &AuthHandler{Tokens: tokens, BcryptCost: bcryptCost, Events: events, Metrics: m, Log: log}
}

// ----- DTOs -----

type loginReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login verifies name and password and returns a signed access token.
// Every failure, including a malformed body, is reported as
// apperr.ErrInvalidCredentials.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Name == "" || req.Password == "" {
		h.Metrics.AuthFailure(metrics.ReasonBadLogin)
		return apperr.ErrInvalidCredentials
	}

	conn, err := session(c)
	if err != nil {
		return err
	}
	u, err := repository.NewUserRepo(conn).GetByName(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.Metrics.AuthFailure(metrics.ReasonBadLogin)
			return apperr.ErrInvalidCredentials
		}
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		h.Metrics.AuthFailure(metrics.ReasonBadLogin)
		return apperr.ErrInvalidCredentials
	}

	access, err := h.Tokens.Issue(u.ID, u.RoleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Successful login",
		"token":   access.Token,
	})
}

// Register creates a user from the payload validated by
// middleware.ValidateCreateUserFields. The caller's role has already been
// checked by the guard chain.
func (h *AuthHandler) Register(c echo.Context) error {
	in, ok := middleware.CreateUserInputFrom(c)
	if !ok {
		return errors.New("register: validated payload missing from context")
	}
	conn, err := session(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	role, err := repository.NewRoleRepo(conn).GetByID(ctx, in.RoleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ErrUnknownRole
		}
		return err
	}

	id, err := repository.NewUserRepo(conn).Create(ctx, in.Name, in.Password, in.RoleID, h.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return &apperr.DuplicateNameError{Name: in.Name}
		}
		return err
	}
	h.Metrics.Registration(role.Name)

	var registeredBy int64
	if claims, ok := middleware.ClaimsFrom(c); ok {
		registeredBy, _ = claims.UserID()
	}
	h.publishRegistered(queue.UserRegisteredEvent{
		UserID:       id,
		Name:         in.Name,
		RoleID:       role.ID,
		RoleName:     role.Name,
		RegisteredBy: registeredBy,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "Successful registration",
		"user":   echo.Map{"id": id, "name": in.Name, "role_name": role.Name},
	})
}

// publishRegistered sends the event without blocking the response. A
// failure is logged and counted, never returned.
func (h *AuthHandler) publishRegistered(ev queue.UserRegisteredEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.Events.PublishUserRegistered(ctx, ev); err != nil {
			h.Metrics.PublishFailure()
			h.Log.WithError(err).WithField("user_id", ev.UserID).Warn("publish user.registered failed")
		}
	}()
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperr.ErrUnauthorizedUser
	}
	uid, err := claims.UserID()
	if err != nil {
		return apperr.ErrInvalidToken
	}
	conn, err := session(c)
	if err != nil {
		return err
	}

	u, err := repository.NewUserRepo(conn).GetByID(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// token outlived its user
			return apperr.ErrUnauthorizedUser
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "user": u.DAO()})
}

package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"advidly/contexts/identity-access/account-service/application"
	"advidly/contexts/identity-access/account-service/domain/entities"
	"advidly/contexts/identity-access/account-service/ports"
	httptransport "advidly/contexts/identity-access/account-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.Register(ctx, ports.RegisterInput{
		Email:           strings.TrimSpace(req.Email),
		Username:        strings.TrimSpace(req.Username),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        strings.TrimSpace(req.FullName),
		UserType:        entities.UserType(strings.TrimSpace(req.UserType)),
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.UserResponse, entities.Session, error) {
	user, session, err := h.Service.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return httptransport.UserResponse{}, entities.Session{}, err
	}
	return toUserResponse(user), session, nil
}

func (h Handler) LogoutHandler(ctx context.Context, token string) error {
	return h.Service.Logout(ctx, token)
}

func (h Handler) MeHandler(ctx context.Context, userID int64) (httptransport.UserResponse, error) {
	user, err := h.Service.GetUser(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) ValidateSessionHandler(ctx context.Context, token string) (entities.Session, error) {
	return h.Service.ValidateSession(ctx, token)
}

func toUserResponse(user entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		UserType:  string(user.UserType),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

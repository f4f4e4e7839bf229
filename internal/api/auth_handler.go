package api

import (
	"net/http"

	"github.com/phrazzld/contacts-api/internal/pipeline"
	"github.com/phrazzld/contacts-api/internal/schema"
	"github.com/phrazzld/contacts-api/internal/service"
)

// AuthHandler handles account registration and sign-in.
type AuthHandler struct {
	users service.UserService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// SignUpRoute handles POST /auth/signup.
func (h *AuthHandler) SignUpRoute() pipeline.Route {
	return pipeline.Route{
		Name:    "auth/signup",
		Schemas: &schema.RouteSchemaSet{Body: schema.For[SignUpRequest]()},
		Handler: h.signUp,
	}
}

// SignInRoute handles POST /auth/signin.
func (h *AuthHandler) SignInRoute() pipeline.Route {
	return pipeline.Route{
		Name:    "auth/signin",
		Schemas: &schema.RouteSchemaSet{Body: schema.For[SignInRequest]()},
		Handler: h.signIn,
	}
}

func (h *AuthHandler) signUp(ex *pipeline.Exchange) (*pipeline.Response, error) {
	req, err := pipeline.Bind[SignUpRequest](ex)
	if err != nil {
		return nil, err
	}

	user, err := h.users.SignUp(ex.Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return pipeline.JSON(http.StatusCreated, SignUpResponse{UserID: user.ID}), nil
}

func (h *AuthHandler) signIn(ex *pipeline.Exchange) (*pipeline.Response, error) {
	req, err := pipeline.Bind[SignInRequest](ex)
	if err != nil {
		return nil, err
	}

	session, err := h.users.SignIn(ex.Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return pipeline.JSON(http.StatusOK, SignInResponse{
		AccessToken:  session.AccessToken,
		TokenExpires: formatExpiry(session.ExpiresAt),
	}), nil
}

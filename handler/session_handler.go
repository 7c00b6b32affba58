package handler

import (
	"errors"
	"fmt"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
)

// SessionHandler serves the account endpoints of one role. The router mounts
// one instance under /api/authors and one under /api/readers.
type SessionHandler struct {
	service *service.SessionService
	cookies CookieSettings
}

func NewSessionHandler(svc *service.SessionService, cookies CookieSettings) *SessionHandler {
	return &SessionHandler{service: svc, cookies: cookies}
}

func (h *SessionHandler) title() string {
	return h.service.Role().Title()
}

// signUpSubject is the wording each role's sign-up message has always used.
func signUpSubject(role model.Role) string {
	if role == model.RoleAuthor {
		return "An author"
	}
	return "A Reader"
}

// SignUp godoc
// @Summary      Create an account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Param        body  body  model.SignUpRequest  true  "Account details"
// @Success      201  {object}  MessageResponse
// @Failure      422  {object}  common.AppError
// @Router       /api/{role}/signup [post]
func (h *SessionHandler) SignUp(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignUpRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	actor, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			return common.NewAppError(http.StatusUnprocessableEntity, "Email is already in use", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
	}

	common.WriteJSON(w, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("%s account with %s email address created successfully!", signUpSubject(h.service.Role()), actor.Username),
	})
	return nil
}

// SignIn godoc
// @Summary      Sign in
// @Description  Returns an access token and sets the refreshtoken cookie.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Param        body  body  model.SignInRequest  true  "Credentials"
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/{role}/signin [post]
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignInRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	session, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActorNotFound):
			return common.NewAppError(http.StatusNotFound, h.title()+" not found", nil)
		case errors.Is(err, service.ErrIncorrectPassword):
			return common.NewAppError(http.StatusUnauthorized, "Incorrect password", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not sign in", err)
		}
	}

	h.cookies.setRefresh(w, session.Refresh.Token, session.Refresh.ExpiresAt)
	common.WriteJSON(w, http.StatusOK, TokenResponse{
		Token:     session.Access.Token,
		Expire:    session.Access.ExpiresAt,
		FirstName: session.Actor.FirstName,
	})
	return nil
}

// Refresh godoc
// @Summary      Issue a new access token from the refreshtoken cookie
// @Tags         session
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/{role}/refresh [post]
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusBadRequest, "No Refresh Token Provided.", nil).With("error", true)
	}

	session, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return common.NewAppError(http.StatusNotFound, h.title()+" not found", nil).With("error", true)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err).With("error", true)
	}

	common.WriteJSON(w, http.StatusOK, TokenResponse{
		Token:     session.Access.Token,
		Expire:    session.Access.ExpiresAt,
		FirstName: session.Actor.FirstName,
	})
	return nil
}

// Status godoc
// @Summary      Report whether the Authorization header holds a live session
// @Tags         session
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Success      200  {object}  StatusResponse
// @Security     BearerAuth
// @Router       /api/{role}/status [get]
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) *common.AppError {
	var resp StatusResponse
	if actor, ok := h.service.Status(r.Context(), r.Header.Get("Authorization")); ok {
		resp.FirstName = actor.FirstName
	}
	common.WriteJSON(w, http.StatusOK, resp)
	return nil
}

// SignOut godoc
// @Summary      Revoke the presented access token and clear the refresh cookie
// @Tags         session
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Success      201  {object}  LogoutResponse
// @Failure      401  {object}  LogoutResponse
// @Security     BearerAuth
// @Router       /api/{role}/signout [post]
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) *common.AppError {
	token := r.Header.Get("Authorization")
	if token == "" {
		return common.NewAppError(http.StatusUnauthorized, "You need to be logged in to logout.", nil).With("logout", false)
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not sign out", err).With("logout", false)
	}

	h.cookies.clearRefresh(w)
	common.WriteJSON(w, http.StatusCreated, LogoutResponse{Logout: true, Message: "Signed Out successfully!"})
	return nil
}

// Profile godoc
// @Summary      Show the signed-in actor's profile
// @Tags         profile
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Success      200  {object}  model.Profile
// @Failure      401  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/{role}/profile [get]
func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) *common.AppError {
	actor, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}
	common.WriteJSON(w, http.StatusOK, actor.Profile())
	return nil
}

// UpdateProfile godoc
// @Summary      Update names, email and password
// @Description  The access token used for the request is revoked and the refresh cookie cleared.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Param        body  body  model.SignUpRequest  true  "New profile"
// @Success      201  {object}  MessageResponse
// @Failure      422  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/{role}/profile [put]
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	actor, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateProfileRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	err := h.service.UpdateProfile(r.Context(), actor, r.Header.Get("Authorization"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			return common.NewAppError(http.StatusUnprocessableEntity, "Email is already in use", nil)
		case errors.Is(err, service.ErrActorNotFound):
			return common.NewAppError(http.StatusNotFound, h.title()+" not found", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update profile", err)
		}
	}

	h.cookies.clearRefresh(w)
	common.WriteJSON(w, http.StatusCreated, MessageResponse{Message: h.title() + " updated successfully"})
	return nil
}

// DeleteAccount godoc
// @Summary      Delete the signed-in actor
// @Description  Refused while the actor still owns posts.
// @Tags         profile
// @Produce      json
// @Param        role  path  string  true  "authors or readers"
// @Success      200  {object}  DeleteResponse
// @Failure      409  {object}  DeleteResponse
// @Security     BearerAuth
// @Router       /api/{role}/profile [delete]
func (h *SessionHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	actor, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteAccount(r.Context(), actor); err != nil {
		switch {
		case errors.Is(err, service.ErrActorHasPosts):
			return common.NewAppError(http.StatusConflict, "You first need to delete all your blog posts to delete your account.", nil).
				With("delete", false)
		case errors.Is(err, service.ErrActorNotFound):
			return common.NewAppError(http.StatusNotFound, h.title()+" not found", nil).With("delete", false)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not delete account", err).With("delete", false)
		}
	}

	h.cookies.clearRefresh(w)
	common.WriteJSON(w, http.StatusOK, DeleteResponse{Delete: true, Message: h.title() + " deleted successfully!"})
	return nil
}

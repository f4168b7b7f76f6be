package userhdl

import (
	"time"

	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	userdto "github.com/Aniket1026/yoto/internal/api/user/dto"
	usersvc "github.com/Aniket1026/yoto/internal/api/user/service"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/media"

	"github.com/gofiber/fiber/v3"
)

// RefreshTokenCookie holds the refresh token between requests.
const RefreshTokenCookie = "refreshToken"

// CookieOptions controls the auth cookies.
type CookieOptions struct {
	Secure     bool
	Domain     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// UserHandler serves registration, session and profile routes.
type UserHandler struct {
	userService *usersvc.UserService
	temp        media.TempStore
	cookies     CookieOptions
}

func NewUserHandler(userService *usersvc.UserService, temp media.TempStore, cookies CookieOptions) *UserHandler {
	return &UserHandler{userService: userService, temp: temp, cookies: cookies}
}

// HandleRegister creates an account from a multipart form with an avatar.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	var input userdto.RegisterInput
	if err := basehdl.ParseForm(c, &input); err != nil {
		return err
	}

	var err error
	if input.AvatarPath, err = h.temp.Save(c, "avatar", true); err != nil {
		return err
	}
	defer func() { h.temp.Cleanup(input.AvatarPath, input.CoverImagePath) }()
	if input.CoverImagePath, err = h.temp.Save(c, "coverImage", false); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Context(), &input)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusCreated, user, "User registered successfully")
}

// HandleLogin sets both auth cookies and also returns the tokens in the body.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	var input userdto.LoginInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return err
	}
	result, err := h.userService.Login(c.Context(), &input)
	if err != nil {
		return err
	}
	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return basehdl.Respond(c, common.StatusOK, result, "User logged in successfully")
}

func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.Logout(c.Context(), userID); err != nil {
		return err
	}
	h.clearAuthCookies(c)
	return basehdl.Respond(c, common.StatusOK, fiber.Map{}, "User logged out")
}

// HandleRefreshToken reads the refresh token from its cookie or the JSON body.
func (h *UserHandler) HandleRefreshToken(c fiber.Ctx) error {
	token := c.Cookies(RefreshTokenCookie)
	if token == "" {
		var input userdto.RefreshTokenInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return err
		}
		token = input.RefreshToken
	}

	pair, err := h.userService.RefreshTokens(c.Context(), token)
	if err != nil {
		return err
	}
	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	return basehdl.Respond(c, common.StatusOK, pair, "Access token refreshed")
}

func (h *UserHandler) HandleResetPassword(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	var input userdto.ResetPasswordInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return err
	}
	if err := h.userService.ResetPassword(c.Context(), userID, &input); err != nil {
		return err
	}
	h.clearAuthCookies(c)
	return basehdl.Respond(c, common.StatusOK, fiber.Map{}, "Password changed successfully")
}

func (h *UserHandler) HandleCurrentUser(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.CurrentUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) HandleUpdateAccount(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	var input userdto.UpdateAccountInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return err
	}
	user, err := h.userService.UpdateAccount(c.Context(), userID, &input)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) HandleUpdateAvatar(c fiber.Ctx) error {
	return h.replaceImage(c, "avatar", h.userService.UpdateAvatar, "Avatar updated successfully")
}

func (h *UserHandler) HandleUpdateCoverImage(c fiber.Ctx) error {
	return h.replaceImage(c, "coverImage", h.userService.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) replaceImage(c fiber.Ctx, field string, update imageUpdater, message string) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	path, err := h.temp.Save(c, field, true)
	if err != nil {
		return err
	}
	defer h.temp.Cleanup(path)

	user, err := update(c.Context(), userID, path)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, user, message)
}

func (h *UserHandler) HandleChannelProfile(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.ChannelProfile(c.Context(), userID, c.Params("username"))
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, profile, "User channel fetched successfully")
}

// HandleWatchHistory returns the caller's history, most recent first. Videos
// that were deleted, or unpublished by someone else, are left out, so the
// list can be shorter than the stored history.
func (h *UserHandler) HandleWatchHistory(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	history, err := h.userService.WatchHistory(c.Context(), userID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, history, "Watch history fetched successfully")
}

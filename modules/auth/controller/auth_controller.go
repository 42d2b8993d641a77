package controller

import (
	"studio-api/core/controller"
	"studio-api/core/errors"
	"studio-api/core/middleware"
	"studio-api/modules/auth/dto"
	"studio-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	Service service.AuthService
}

func NewAuthController(svc service.AuthService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
	}
}

// POST /api/v1/public/auth/register
func (ctl *AuthController) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	user, err := ctl.Service.Register(c.Request().Context(), &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, user, "user registered")
}

// POST /api/v1/public/auth/login
func (ctl *AuthController) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	resp, err := ctl.Service.Login(c.Request().Context(), &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, resp, "login successful")
}

// GET /api/v1/private/auth/me
func (ctl *AuthController) GetMe(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	user, err := ctl.Service.GetMe(c.Request().Context(), token.UserID)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, user, "user retrieved")
}

// PUT /api/v1/private/auth/timezone
func (ctl *AuthController) UpdateTimezone(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	var req dto.UpdateTimezoneRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	user, err := ctl.Service.UpdateTimezone(c.Request().Context(), token.UserID, &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, user, "timezone updated")
}

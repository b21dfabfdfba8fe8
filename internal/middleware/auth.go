package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"portal/internal/utils"
)

func JWTAuth(issuer *utils.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, utils.ErrorBody(utils.ErrUnauthorized.Error()))
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, utils.ErrorBody(utils.ErrInvalidToken.Error()))
			}

			claims, err := issuer.ValidateToken(token)
			if errors.Is(err, utils.ErrExpiredToken) {
				return c.JSON(http.StatusUnauthorized, utils.ErrorBody(utils.ErrExpiredToken.Error()))
			}
			if err != nil {
				return c.JSON(http.StatusUnauthorized, utils.ErrorBody(utils.ErrInvalidToken.Error()))
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}

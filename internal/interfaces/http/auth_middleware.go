package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/pkg/jwt"
)

// Locals keys para OperatorID y Role en Fiber.
const (
	LocalOperatorID = "operator_id"
	LocalRole       = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae OperatorID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return deny(c, "MISSING_TOKEN", fmt.Errorf("%w: Authorization header requerido", domain.ErrUnauthorized))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return deny(c, "INVALID_TOKEN", fmt.Errorf("%w: formato Bearer <token>", domain.ErrUnauthorized))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return deny(c, "MISSING_TOKEN", fmt.Errorf("%w: token vacío", domain.ErrUnauthorized))
		}
		operatorID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return deny(c, "INVALID_TOKEN", fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized))
		}
		c.Locals(LocalOperatorID, operatorID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Va DESPUÉS de AuthMiddleware.
//   - ErrUnauthorized (401 MISSING_ROLE) → el token no trae el claim role.
//   - ErrForbidden (403 FORBIDDEN)       → el rol no está entre los permitidos.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return deny(c, "MISSING_ROLE", fmt.Errorf("%w: el token no incluye rol", domain.ErrUnauthorized))
		}
		if _, ok := allowed[role]; !ok {
			return deny(c, "FORBIDDEN", fmt.Errorf("%w: el rol '%s' no tiene acceso a este recurso", domain.ErrForbidden, role))
		}
		return c.Next()
	}
}

// deny responde con el status que errorStatus asigna al sentinel envuelto en err.
func deny(c *fiber.Ctx, code string, err error) error {
	status, _ := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// GetOperatorID devuelve el OperatorID del contexto (después del middleware de auth).
func GetOperatorID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalOperatorID).(string)
	return s
}

// GetRole devuelve el Role del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

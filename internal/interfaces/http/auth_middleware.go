package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/pkg/jwt"
)

// Locals keys para os dados do token no Fiber.
const (
	LocalUserID    = "user_id"
	LocalUnidadeID = "unidade_id"
	LocalPerfil    = "perfil"
)

// AuthMiddleware valida o Bearer Token JWT e extrai usuário, unidade e perfil
// para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, unidadeID, perfil, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUnidadeID, unidadeID)
		c.Locals(LocalPerfil, perfil)
		return c.Next()
	}
}

// RequirePerfilGestor exige perfil gestor (aprovação de notas, reconciliação,
// cadastro de unidades).
func RequirePerfilGestor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPerfil(c) != entity.PerfilGestor {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operação restrita ao perfil gestor"})
		}
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (após o middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetUnidadeID devolve a unidade escolar do contexto.
func GetUnidadeID(c *fiber.Ctx) string {
	return localString(c, LocalUnidadeID)
}

// GetPerfil devolve o perfil do usuário autenticado.
func GetPerfil(c *fiber.Ctx) string {
	return localString(c, LocalPerfil)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

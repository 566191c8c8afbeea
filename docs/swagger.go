package docs

import "github.com/swaggo/swag"

// @title           AAC Board API
// @version         1.0
// @description     API for AAC communication boards, AI icon generation and culture profiles

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Auth
// @tag.description Registration and token issuance

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Icons
// @tag.description Icon library and generation operations

// @tag.name Profile
// @tag.description Culture profile operations

// @tag.name Health
// @tag.description Service health

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}

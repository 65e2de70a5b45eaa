//go:build swag

package swaggerkit

import docs "skillreel/internal/services/api/docs"

func init() { docReader = func() string { return docs.SwaggerInfo.ReadDoc() } }

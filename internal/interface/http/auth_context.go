package http

import (
	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/domain/auth"
)

// adminClaimsKey holds the console operator's verified access token claims.
const adminClaimsKey = "edudigital.admin"

func setAdminClaims(c *gin.Context, claims auth.Claims) {
	c.Set(adminClaimsKey, claims)
}

// adminClaims reports the operator behind an authenticated console request.
func adminClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(adminClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok && claims.Username != ""
}

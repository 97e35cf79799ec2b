package middleware

import "github.com/gin-gonic/gin"

// GetPrincipal gets the caller's principal from context
func GetPrincipal(c *gin.Context) (string, bool) {
	v, exists := c.Get("principal")
	if !exists {
		return "", false
	}
	principal, ok := v.(string)
	return principal, ok && principal != ""
}

// MustGetPrincipal gets the principal from context or panics
func MustGetPrincipal(c *gin.Context) string {
	principal, exists := GetPrincipal(c)
	if !exists {
		panic("principal not found in context")
	}
	return principal
}

// GetToken gets the raw bearer token from context
func GetToken(c *gin.Context) (string, bool) {
	v, exists := c.Get("token")
	if !exists {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}

// MustGetToken gets the raw bearer token from context or panics
func MustGetToken(c *gin.Context) string {
	token, exists := GetToken(c)
	if !exists {
		panic("token not found in context")
	}
	return token
}

// GetRoles gets caller roles from context
func GetRoles(c *gin.Context) []string {
	roles, exists := c.Get("roles")
	if !exists {
		return []string{}
	}

	rolesList, ok := roles.([]string)
	if !ok {
		return []string{}
	}

	return rolesList
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := GetPrincipal(c)
	return exists
}

package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode silences gin's debug output outside of development.
func SetGinMode(env string) {
	switch env {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RequireJSONBody aborts with 415 unless the request body is declared as
// application/json or a +json subtype.
func RequireJSONBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsJSON(c.ContentType()) {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"code":    "UNSUPPORTED_MEDIA_TYPE",
				"message": "request body must be " + binding.MIMEJSON,
			})
			return
		}
		c.Next()
	}
}

// AcceptJSON aborts with an empty 406 unless the Accept header admits JSON.
// A missing Accept header admits anything.
func AcceptJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.NegotiateFormat(binding.MIMEJSON) == "" {
			c.AbortWithStatus(http.StatusNotAcceptable)
			return
		}
		c.Next()
	}
}

func IsJSON(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == binding.MIMEJSON ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

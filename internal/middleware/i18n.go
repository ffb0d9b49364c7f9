// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/utils"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextKeyLang, parseLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// parseLanguage picks the first supported tag of an Accept-Language header such
// as "fil-PH,fil;q=0.9,en;q=0.8".
func parseLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.Split(part, ";")[0]))
		switch {
		case tag == "":
			continue
		case tag == "fil" || tag == "tl" || strings.HasPrefix(tag, "fil-") || strings.HasPrefix(tag, "tl-"):
			return "fil"
		case tag == "en" || strings.HasPrefix(tag, "en-"):
			return "en"
		case i18n.IsSupported(tag):
			return tag
		}
	}
	return i18n.DefaultLanguage()
}

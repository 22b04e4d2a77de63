package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cantinazo/api/internal/api/handler/v1/response"
	"github.com/cantinazo/api/internal/pkg/jwthelper"
)

const (
	ContextKeyStaffID = "staffID"
	ContextKeyIsStaff = "isStaff"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT validates the bearer token and stores the staff claims in
// the request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.RenderErr(ctx, response.ErrPermissionDenied())
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrPermissionDenied())
			return
		}

		ctx.Set(ContextKeyStaffID, claims.StaffID)
		ctx.Set(ContextKeyIsStaff, claims.IsStaff)

		ctx.Next()
	}
}

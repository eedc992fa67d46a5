package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
)

const currentUserKey = "currentUser"

// UserLoaderMiddleware runs after the JWT verifier. It maps the token to an
// identity record and rejects tokens whose user no longer exists, so a
// deleted account cannot keep using an unexpired token.
func UserLoaderMiddleware(db *gorm.DB) iris.Handler {
	return func(ctx iris.Context) {
		claims := jwt.Get(ctx).(*AccessToken)

		var user models.User
		if err := db.First(&user, claims.ID).Error; err != nil {
			CreateError(iris.StatusUnauthorized, "unauthorized", "Tidak terotorisasi, token gagal", ctx)
			return
		}

		ctx.Values().Set(currentUserKey, &user)
		ctx.Next()
	}
}

// AdminOnlyMiddleware must run after UserLoaderMiddleware. The role check
// uses the loaded identity record, not the token claim.
func AdminOnlyMiddleware(ctx iris.Context) {
	user := CurrentUser(ctx)
	if user == nil || user.Role != models.RoleAdmin {
		CreateError(iris.StatusForbidden, "forbidden", "Akses ditolak. Hanya untuk Admin.", ctx)
		return
	}
	ctx.Next()
}

// CurrentUser returns the identity loaded by UserLoaderMiddleware.
func CurrentUser(ctx iris.Context) *models.User {
	if u, ok := ctx.Values().Get(currentUserKey).(*models.User); ok {
		return u
	}
	return nil
}

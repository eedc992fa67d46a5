package routes

import (
	"strings"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/utils"
)

// UserHandler serves registration, login and profile routes plus the admin
// user CRUD.
type UserHandler struct {
	DB     *gorm.DB
	Tokens *utils.TokenService
}

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Register(ctx iris.Context) {
	var userInput RegisterUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.User
	userExists, userExistsErr := h.getAndHandleUserExists(&existing, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser := models.User{
		Name:     userInput.Name,
		Email:    strings.ToLower(userInput.Email),
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if err := h.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"id":    newUser.ID,
		"name":  newUser.Name,
		"email": newUser.Email,
		"role":  newUser.Role,
	})
}

func (h *UserHandler) Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Kredensial tidak valid"

	var existingUser models.User
	userExists, userExistsErr := h.getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "credentials_error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "credentials_error", errorMsg, ctx)
		return
	}

	tokenPair, tokenErr := h.Tokens.CreateTokenPair(existingUser.ID, existingUser.Role)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"id":           existingUser.ID,
		"name":         existingUser.Name,
		"email":        existingUser.Email,
		"role":         existingUser.Role,
		"token":        string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// GetProfile returns the authenticated user's own record.
func (h *UserHandler) GetProfile(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	if user == nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "User tidak ditemukan", ctx)
		return
	}
	ctx.JSON(user)
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (h *UserHandler) UpdateProfile(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	if user == nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "User tidak ditemukan", ctx)
		return
	}

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Email != "" && strings.ToLower(input.Email) != user.Email {
		var taken models.User
		exists, err := h.getAndHandleUserExists(&taken, input.Email)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if exists {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "Email sudah digunakan", ctx)
			return
		}
		user.Email = strings.ToLower(input.Email)
	}
	if input.Name != "" {
		user.Name = input.Name
	}

	if err := h.DB.Save(user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// AdminListUsers - GET /api/users (admin)
func (h *UserHandler) AdminListUsers(ctx iris.Context) {
	var users []models.User
	if err := h.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(users)
}

type AdminUpdateUserInput struct {
	Name  string      `json:"name"`
	Email string      `json:"email" validate:"omitempty,email"`
	Role  models.Role `json:"role"`
}

// AdminUpdateUser - PUT /api/users/{id} (admin). Partial update: only
// supplied fields override.
func (h *UserHandler) AdminUpdateUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid user ID", ctx)
		return
	}

	var input AdminUpdateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "User tidak ditemukan", ctx)
		return
	}

	before := user
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = strings.ToLower(input.Email)
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "Role tidak valid", ctx)
			return
		}
		user.Role = input.Role
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(h.DB, ctx, "user.update", "user", user.ID, before, user)

	ctx.JSON(iris.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// AdminDeleteUser - DELETE /api/users/{id} (admin). Hard delete.
func (h *UserHandler) AdminDeleteUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid user ID", ctx)
		return
	}

	res := h.DB.Unscoped().Delete(&models.User{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "User tidak ditemukan", ctx)
		return
	}

	utils.Audit(h.DB, ctx, "user.delete", "user", id, nil, nil)

	ctx.JSON(iris.Map{"message": "User berhasil dihapus"})
}

func (h *UserHandler) getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := h.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)
	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}
	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

package routes

import (
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/storage"
	"github.com/zafyhx/stayverse-project/utils"
)

// BlogHandler is plain editorial CRUD; no booking invariants here.
type BlogHandler struct {
	DB      *gorm.DB
	Uploads *storage.UploadStore
}

// GetAllBlogs - GET /api/blog
func (h *BlogHandler) GetAllBlogs(ctx iris.Context) {
	blogs := []models.Blog{}
	if err := h.DB.Order("created_at DESC").Find(&blogs).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(blogs)
}

// GetBlogByID - GET /api/blog/{id}
func (h *BlogHandler) GetBlogByID(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid blog ID", ctx)
		return
	}

	var blog models.Blog
	if err := h.DB.First(&blog, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Blog tidak ditemukan", ctx)
		return
	}
	ctx.JSON(&blog)
}

// CreateBlog - POST /api/blog (admin). Multipart form with an optional
// header image.
func (h *BlogHandler) CreateBlog(ctx iris.Context) {
	title := ctx.FormValue("title")
	content := ctx.FormValue("content")
	if title == "" || content == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "Judul dan isi blog wajib diisi.", ctx)
		return
	}

	blog := models.Blog{
		Title:   title,
		Content: content,
	}
	if author := ctx.FormValue("author"); author != "" {
		blog.Author = author
	}
	if category := ctx.FormValue("category"); category != "" {
		blog.Category = category
	}

	if imageURL, ok := h.saveImage(ctx); ok {
		blog.ImageURL = imageURL
	} else if ctx.IsStopped() {
		return
	}

	if err := h.DB.Create(&blog).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(h.DB, ctx, "blog.create", "blog", blog.ID, nil, blog)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&blog)
}

// UpdateBlog - PUT /api/blog/{id} (admin). Partial update.
func (h *BlogHandler) UpdateBlog(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid blog ID", ctx)
		return
	}

	var blog models.Blog
	if err := h.DB.First(&blog, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Blog tidak ditemukan", ctx)
		return
	}

	before := blog

	if title := ctx.FormValue("title"); title != "" {
		blog.Title = title
	}
	if content := ctx.FormValue("content"); content != "" {
		blog.Content = content
	}
	if author := ctx.FormValue("author"); author != "" {
		blog.Author = author
	}
	if category := ctx.FormValue("category"); category != "" {
		blog.Category = category
	}

	if imageURL, ok := h.saveImage(ctx); ok {
		blog.ImageURL = imageURL
	} else if ctx.IsStopped() {
		return
	}

	if err := h.DB.Save(&blog).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(h.DB, ctx, "blog.update", "blog", blog.ID, before, blog)

	ctx.JSON(&blog)
}

// DeleteBlog - DELETE /api/blog/{id} (admin). Hard delete.
func (h *BlogHandler) DeleteBlog(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid blog ID", ctx)
		return
	}

	res := h.DB.Unscoped().Delete(&models.Blog{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Blog tidak ditemukan", ctx)
		return
	}

	utils.Audit(h.DB, ctx, "blog.delete", "blog", id, nil, nil)

	ctx.JSON(iris.Map{"message": "Blog berhasil dihapus"})
}

func (h *BlogHandler) saveImage(ctx iris.Context) (string, bool) {
	_, fh, err := ctx.FormFile("image")
	if err != nil {
		return "", false
	}
	imageURL, saveErr := h.Uploads.SaveImage("blogs", fh)
	if saveErr != nil {
		utils.CreateError(iris.StatusBadRequest, "upload_error", saveErr.Error(), ctx)
		return "", false
	}
	return imageURL, true
}

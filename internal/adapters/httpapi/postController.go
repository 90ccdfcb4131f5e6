package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"socialfeed/internal/core/apperror"
	postPort "socialfeed/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc             PostUseCase
	maxUploadBytes int64
}

func NewPostController(pc PostUseCase, maxUploadBytes int64) *PostController {
	return &PostController{pc: pc, maxUploadBytes: maxUploadBytes}
}

type postRequest struct {
	Title       *string             `json:"title" binding:"omitempty,max=255"`
	Description *string             `json:"description"`
	Tags        []postPort.TagInput `json:"tags"`
}

func (r postRequest) input() postPort.PostInput {
	return postPort.PostInput{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
	}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), actorID(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListPosts پارامترها: tags=id1,id2 و start و limit
func (ctl *PostController) ListPosts(c *gin.Context) {
	var q struct {
		Tags  string `form:"tags"`
		Start int    `form:"start" binding:"min=0"`
		Limit int    `form:"limit" binding:"min=0"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	var tagIDs []string
	if q.Tags != "" {
		tagIDs = strings.Split(q.Tags, ",")
	}
	posts, err := ctl.pc.ListPosts(c.Request.Context(), tagIDs, q.Start, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	res, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) ReplacePost(c *gin.Context) {
	ctl.updatePost(c, false)
}

func (ctl *PostController) PatchPost(c *gin.Context) {
	ctl.updatePost(c, true)
}

func (ctl *PostController) updatePost(c *gin.Context, partial bool) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := ctl.pc.UpdatePost(c.Request.Context(), actorID(c), c.Param("id"), req.input(), partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage فایل در فیلد multipart به نام image
func (ctl *PostController) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperror.FieldValidation("image", "no file was submitted"))
		return
	}
	if ctl.maxUploadBytes > 0 && fh.Size > ctl.maxUploadBytes {
		respondError(c, apperror.FieldValidation("image", fmt.Sprintf("file is larger than %d bytes", ctl.maxUploadBytes)))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, apperror.Internal(err))
		return
	}
	defer f.Close()

	var r io.Reader = f
	if ctl.maxUploadBytes > 0 {
		r = io.LimitReader(f, ctl.maxUploadBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		respondError(c, apperror.Internal(err))
		return
	}

	res, err := ctl.pc.UploadImage(c.Request.Context(), actorID(c), c.Param("id"), postPort.ImageUpload{
		Filename: fh.Filename,
		Content:  data,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

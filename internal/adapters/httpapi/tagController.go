package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagController struct{ tc TagUseCase }

func NewTagController(tc TagUseCase) *TagController { return &TagController{tc: tc} }

func (ctl *TagController) ListTags(c *gin.Context) {
	var q struct {
		AssignedOnly bool `form:"assigned_only"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	tags, err := ctl.tc.ListTags(c.Request.Context(), q.AssignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctl *TagController) GetTag(c *gin.Context) {
	t, err := ctl.tc.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// RenameTag برای PUT و PATCH؛ تنها فیلد قابل تغییر name است
func (ctl *TagController) RenameTag(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := ctl.tc.RenameTag(c.Request.Context(), actorID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

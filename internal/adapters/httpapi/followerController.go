package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

// Follow کاربر جاری کاربر مسیر را دنبال می‌کند
func (ctl *FollowerController) Follow(c *gin.Context) {
	f, err := ctl.fc.Follow(c.Request.Context(), actorID(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (ctl *FollowerController) ListFollowers(c *gin.Context) {
	followers, err := ctl.fc.ListFollowers(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowerController) ListFollowing(c *gin.Context) {
	following, err := ctl.fc.ListFollowing(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}

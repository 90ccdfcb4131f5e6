package httpapi

import (
	"net/http"

	"socialfeed/internal/adapters/httpapi/middleware"
	userPort "socialfeed/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) LogoutUser(c *gin.Context) {
	if err := ctl.uc.LogoutUser(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email,max=255"`
		Username string `json:"username" binding:"required,max=150"`
		Name     string `json:"name" binding:"required,max=255"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Email, req.Username, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) GetProfile(c *gin.Context) {
	u, err := ctl.uc.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req struct {
		Email    *string `json:"email" binding:"omitempty,email,max=255"`
		Username *string `json:"username" binding:"omitempty,max=150"`
		Name     *string `json:"name" binding:"omitempty,max=255"`
		Password *string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	u, err := ctl.uc.UpdateProfile(c.Request.Context(), actorID(c), c.Param("username"), userPort.ProfileUpdate{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

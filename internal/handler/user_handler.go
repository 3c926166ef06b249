package handler

import (
	"net/http"

	"softdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

// SignupReq 注册请求体
type SignupReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Age             int    `json:"age"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
}

// UserUpdateReq PATCH/PUT 共用，缺省字段不修改
type UserUpdateReq struct {
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	Age             *int    `json:"age"`
	CanBeContacted  *bool   `json:"can_be_contacted"`
	CanDataBeShared *bool   `json:"can_data_be_shared"`
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.Signup(service.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Age:             req.Age,
		CanBeContacted:  req.CanBeContacted,
		CanDataBeShared: req.CanDataBeShared,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": token.AccessToken, "refresh": token.RefreshToken})
}

// TokenRefresh 用 refresh 换新 access
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Refresh(req.Refresh)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": token.AccessToken, "refresh": token.RefreshToken})
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID, _ := currentUser(c)
	if err := h.svc.Logout(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	list, err := h.svc.ListUsers(page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "userID")
	if !ok {
		return
	}
	actorID, role := currentUser(c)

	user, err := h.svc.GetUser(actorID, role, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "userID")
	if !ok {
		return
	}
	actorID, role := currentUser(c)

	var req UserUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.UpdateUser(actorID, role, id, service.UserUpdate{
		Email:           req.Email,
		Password:        req.Password,
		Age:             req.Age,
		CanBeContacted:  req.CanBeContacted,
		CanDataBeShared: req.CanDataBeShared,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "userID")
	if !ok {
		return
	}
	actorID, role := currentUser(c)

	if err := h.svc.DeleteUser(actorID, role, id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

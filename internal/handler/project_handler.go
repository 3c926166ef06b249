package handler

import (
	"net/http"

	"softdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

type ProjectCreateReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type ProjectUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
}

// ContributorReq 增删成员都只认用户名
type ContributorReq struct {
	Username string `json:"username" binding:"required"`
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, _ := currentUser(c)

	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	project, err := h.svc.CreateProject(userID, req.Title, req.Description, req.Type)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, _ := currentUser(c)
	page, size := pageParams(c)

	list, err := h.svc.ListProjects(userID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	project, err := h.svc.GetProject(userID, projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	var req ProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	project, err := h.svc.UpdateProject(userID, projectID, service.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	if err := h.svc.DeleteProject(userID, projectID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ListContributors(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	list, err := h.svc.ListContributors(userID, projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ProjectHandler) AddContributor(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	var req ContributorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	member, err := h.svc.AddContributor(userID, projectID, req.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *ProjectHandler) RemoveContributor(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	var req ContributorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.RemoveContributor(userID, projectID, req.Username); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

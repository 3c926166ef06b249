package handler

import (
	"net/http"

	"softdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	svc *service.IssueService
}

type IssueCreateReq struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Tag              string `json:"tag"`
	Priority         string `json:"priority"`
	AssigneeUsername string `json:"assignee_username"`
}

type IssueUpdateReq struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Tag              *string `json:"tag"`
	Priority         *string `json:"priority"`
	Status           *string `json:"status"`
	AssigneeUsername *string `json:"assignee_username"`
}

func NewIssueHandler(svc *service.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

func (h *IssueHandler) Create(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}

	var req IssueCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	issue, err := h.svc.CreateIssue(userID, projectID, service.IssueInput{
		Title:            req.Title,
		Description:      req.Description,
		Tag:              req.Tag,
		Priority:         req.Priority,
		AssigneeUsername: req.AssigneeUsername,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

func (h *IssueHandler) List(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	page, size := pageParams(c)

	list, err := h.svc.ListIssues(userID, projectID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *IssueHandler) Get(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	issueID, ok := pathID(c, "issueID")
	if !ok {
		return
	}

	issue, err := h.svc.GetIssue(userID, projectID, issueID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *IssueHandler) Update(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	issueID, ok := pathID(c, "issueID")
	if !ok {
		return
	}

	var req IssueUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	issue, err := h.svc.UpdateIssue(userID, projectID, issueID, service.IssueUpdate{
		Title:            req.Title,
		Description:      req.Description,
		Tag:              req.Tag,
		Priority:         req.Priority,
		Status:           req.Status,
		AssigneeUsername: req.AssigneeUsername,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *IssueHandler) Delete(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	issueID, ok := pathID(c, "issueID")
	if !ok {
		return
	}

	if err := h.svc.DeleteIssue(userID, projectID, issueID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

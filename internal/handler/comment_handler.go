package handler

import (
	"net/http"

	"softdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CommentReq struct {
	Description string `json:"description"`
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// ids 嵌套路径的三段 ID
func (h *CommentHandler) ids(c *gin.Context) (projectID, issueID uint64, ok bool) {
	projectID, ok = pathID(c, "projectID")
	if !ok {
		return
	}
	issueID, ok = pathID(c, "issueID")
	return
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, issueID, ok := h.ids(c)
	if !ok {
		return
	}

	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.CreateComment(userID, projectID, issueID, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, issueID, ok := h.ids(c)
	if !ok {
		return
	}
	page, size := pageParams(c)

	list, err := h.svc.ListComments(userID, projectID, issueID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommentHandler) Get(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, issueID, ok := h.ids(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}

	comment, err := h.svc.GetComment(userID, projectID, issueID, commentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, issueID, ok := h.ids(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}

	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.UpdateComment(userID, projectID, issueID, commentID, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, _ := currentUser(c)
	projectID, issueID, ok := h.ids(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}

	if err := h.svc.DeleteComment(userID, projectID, issueID, commentID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

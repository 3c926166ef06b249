package router

import (
	"softdesk/internal/handler"
	"softdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func InitRouter(
	user *handler.UserHandler,
	project *handler.ProjectHandler,
	issue *handler.IssueHandler,
	comment *handler.CommentHandler,
	sessions middleware.SessionStore,
) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")

	// 开放接口
	api.POST("/signup", user.Signup)
	api.POST("/login", user.Login)
	api.POST("/login/refresh", user.TokenRefresh)

	// 登录态接口
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(sessions))
	{
		auth.POST("/logout", user.Logout)

		auth.GET("/users", user.List)
		auth.GET("/users/:userID", user.Get)
		auth.PUT("/users/:userID", user.Update)
		auth.PATCH("/users/:userID", user.Update)
		auth.DELETE("/users/:userID", user.Delete)

		auth.GET("/projects", project.List)
		auth.POST("/projects", project.Create)
		auth.GET("/projects/:projectID", project.Get)
		auth.PUT("/projects/:projectID", project.Update)
		auth.PATCH("/projects/:projectID", project.Update)
		auth.DELETE("/projects/:projectID", project.Delete)

		// 项目成员
		auth.GET("/projects/:projectID/users", project.ListContributors)
		auth.POST("/projects/:projectID/users", project.AddContributor)
		auth.DELETE("/projects/:projectID/users", project.RemoveContributor)

		// 议题
		auth.GET("/projects/:projectID/issues", issue.List)
		auth.POST("/projects/:projectID/issues", issue.Create)
		auth.GET("/projects/:projectID/issues/:issueID", issue.Get)
		auth.PUT("/projects/:projectID/issues/:issueID", issue.Update)
		auth.PATCH("/projects/:projectID/issues/:issueID", issue.Update)
		auth.DELETE("/projects/:projectID/issues/:issueID", issue.Delete)

		// 评论
		auth.GET("/projects/:projectID/issues/:issueID/comments", comment.List)
		auth.POST("/projects/:projectID/issues/:issueID/comments", comment.Create)
		auth.GET("/projects/:projectID/issues/:issueID/comments/:commentID", comment.Get)
		auth.PUT("/projects/:projectID/issues/:issueID/comments/:commentID", comment.Update)
		auth.DELETE("/projects/:projectID/issues/:issueID/comments/:commentID", comment.Delete)
	}

	return r
}

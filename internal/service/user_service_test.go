package service

import (
	"testing"

	"softdesk/internal/model"
	"softdesk/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupValidation(t *testing.T) {
	e := newEnv()

	_, err := e.users.Signup(SignupInput{Username: "", Email: "a@b.c", Password: "x", Age: 20})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = e.users.Signup(SignupInput{Username: "kid", Email: "kid@example.com", Password: "x", Age: 14})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	user, err := e.users.Signup(SignupInput{Username: "matt", Email: "matt@example.com", Password: "secret123", Age: 15, CanBeContacted: true})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
}

func TestSignupUniqueness(t *testing.T) {
	e := newEnv()
	e.signup("matt")

	_, err := e.users.Signup(SignupInput{Username: "matt", Email: "other@example.com", Password: "x", Age: 20})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	_, err = e.users.Signup(SignupInput{Username: "other", Email: "matt@example.com", Password: "x", Age: 20})
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestLoginAndSession(t *testing.T) {
	e := newEnv()
	user := e.signup("matt")

	_, err := e.users.Login("matt", "wrong")
	assert.ErrorIs(t, err, pkg.ErrAuthentication)

	_, err = e.users.Login("nobody", "secret123")
	assert.ErrorIs(t, err, pkg.ErrAuthentication)

	pair, err := e.users.Login("matt", "secret123")
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, e.sessions.tokens[user.ID], "login must store the access token as the active session")

	claims, err := pkg.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, e.users.Logout(user.ID))
	_, ok := e.sessions.tokens[user.ID]
	assert.False(t, ok)
}

func TestRefreshRotatesSession(t *testing.T) {
	e := newEnv()
	user := e.signup("matt")

	pair, err := e.users.Login("matt", "secret123")
	require.NoError(t, err)

	fresh, err := e.users.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, fresh.AccessToken, e.sessions.tokens[user.ID], "refresh must install the new access token")

	_, err = e.users.Refresh("not-a-token")
	assert.ErrorIs(t, err, pkg.ErrAuthentication)

	// access token 不能当 refresh 用
	_, err = e.users.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, pkg.ErrAuthentication)
}

func TestUserAccessControl(t *testing.T) {
	e := newEnv()
	matt := e.signup("matt")
	eve := e.signup("eve")

	_, err := e.users.GetUser(eve.ID, model.RoleUser, matt.ID)
	assert.ErrorIs(t, err, pkg.ErrPermission)

	got, err := e.users.GetUser(matt.ID, model.RoleUser, matt.ID)
	require.NoError(t, err)
	assert.Equal(t, "matt", got.Username)

	// 管理员可以访问任何人
	_, err = e.users.GetUser(eve.ID, model.RoleAdmin, matt.ID)
	assert.NoError(t, err)
}

func TestUpdateUser(t *testing.T) {
	e := newEnv()
	matt := e.signup("matt")
	e.signup("eve")

	badAge := 10
	_, err := e.users.UpdateUser(matt.ID, model.RoleUser, matt.ID, UserUpdate{Age: &badAge})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	takenEmail := "eve@example.com"
	_, err = e.users.UpdateUser(matt.ID, model.RoleUser, matt.ID, UserUpdate{Email: &takenEmail})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	newEmail := "matt2@example.com"
	contact := true
	updated, err := e.users.UpdateUser(matt.ID, model.RoleUser, matt.ID, UserUpdate{Email: &newEmail, CanBeContacted: &contact})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
	assert.True(t, updated.CanBeContacted)
}

func TestDeleteUser(t *testing.T) {
	e := newEnv()
	matt := e.signup("matt")
	eve := e.signup("eve")

	err := e.users.DeleteUser(eve.ID, model.RoleUser, matt.ID)
	assert.ErrorIs(t, err, pkg.ErrPermission)

	require.NoError(t, e.users.DeleteUser(matt.ID, model.RoleUser, matt.ID))
	_, err = e.users.GetUser(matt.ID, model.RoleAdmin, matt.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	err = e.users.DeleteUser(eve.ID, model.RoleAdmin, matt.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

// 删号后作者名下的内容必须跟着消失，不能留下无主项目
func TestDeleteUserCascadesAuthoredData(t *testing.T) {
	e := newEnv()
	matt := e.signup("matt")
	eve := e.signup("eve")

	mattProject, err := e.projects.CreateProject(matt.ID, "matt's board", "", "back-end")
	require.NoError(t, err)
	_, err = e.projects.AddContributor(matt.ID, mattProject.ID, "eve")
	require.NoError(t, err)

	eveProject, err := e.projects.CreateProject(eve.ID, "eve's board", "", "front-end")
	require.NoError(t, err)
	_, err = e.projects.AddContributor(eve.ID, eveProject.ID, "matt")
	require.NoError(t, err)

	// matt 在 eve 的项目里发议题带评论，并作为被指派人
	mattIssue, err := e.issues.CreateIssue(matt.ID, eveProject.ID, IssueInput{
		Title: "by matt", Tag: "bug", Priority: "low",
	})
	require.NoError(t, err)
	_, err = e.comments.CreateComment(matt.ID, eveProject.ID, mattIssue.ID, "mine")
	require.NoError(t, err)

	eveIssue, err := e.issues.CreateIssue(eve.ID, eveProject.ID, IssueInput{
		Title: "by eve", Tag: "task", Priority: "low", AssigneeUsername: "matt",
	})
	require.NoError(t, err)
	_, err = e.comments.CreateComment(matt.ID, eveProject.ID, eveIssue.ID, "ack")
	require.NoError(t, err)

	require.NoError(t, e.users.DeleteUser(matt.ID, model.RoleUser, matt.ID))

	// matt 的项目整树消失，eve 也查不到
	_, err = e.projects.GetProject(eve.ID, mattProject.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// eve 的项目里 matt 发的议题没了，eve 自己的议题还在但取消了指派
	_, err = e.issues.GetIssue(eve.ID, eveProject.ID, mattIssue.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	kept, err := e.issues.GetIssue(eve.ID, eveProject.ID, eveIssue.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.AssigneeID)

	comments, err := e.comments.ListComments(eve.ID, eveProject.ID, eveIssue.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, comments)

	members, err := e.projects.ListContributors(eve.ID, eveProject.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, eve.ID, members[0].UserID)
}

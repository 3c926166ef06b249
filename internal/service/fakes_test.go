package service

import (
	"context"
	"sort"

	"softdesk/internal/model"

	"gorm.io/gorm"
)

// 内存版仓储，替代 mysql/redis 实现跑测试

type memDB struct {
	nextID   uint64
	users    map[uint64]*model.User
	projects map[uint64]*model.Project
	members  []model.Contributor
	issues   map[uint64]*model.Issue
	comments map[uint64]*model.Comment
	outbox   []model.ActivityOutbox
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[uint64]*model.User),
		projects: make(map[uint64]*model.Project),
		issues:   make(map[uint64]*model.Issue),
		comments: make(map[uint64]*model.Comment),
	}
}

func (d *memDB) id() uint64 {
	d.nextID++
	return d.nextID
}

type fakeUserRepo struct{ db *memDB }

func (r *fakeUserRepo) Create(user *model.User) error {
	for _, u := range r.db.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.db.id()
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint64) (*model.User, error) {
	if u, ok := r.db.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(offset, limit int) ([]model.User, error) {
	ids := make([]uint64, 0, len(r.db.users))
	for id := range r.db.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []model.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *r.db.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) Save(user *model.User) error {
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uint64) error {
	// 名下项目整树级联
	ownedProjects := make(map[uint64]bool)
	for projectID, p := range r.db.projects {
		if p.AuthorID == id {
			ownedProjects[projectID] = true
			delete(r.db.projects, projectID)
		}
	}
	for issueID, issue := range r.db.issues {
		if !ownedProjects[issue.ProjectID] && issue.AuthorID != id {
			continue
		}
		for commentID, comment := range r.db.comments {
			if comment.IssueID == issueID {
				delete(r.db.comments, commentID)
			}
		}
		delete(r.db.issues, issueID)
	}
	for commentID, comment := range r.db.comments {
		if comment.AuthorID == id {
			delete(r.db.comments, commentID)
		}
	}
	for _, issue := range r.db.issues {
		if issue.AssigneeID != nil && *issue.AssigneeID == id {
			issue.AssigneeID = nil
		}
	}
	kept := r.db.members[:0]
	for _, m := range r.db.members {
		if m.UserID != id && !ownedProjects[m.ProjectID] {
			kept = append(kept, m)
		}
	}
	r.db.members = kept
	delete(r.db.users, id)
	return nil
}

type fakeSessionRepo struct{ tokens map[uint64]string }

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{tokens: make(map[uint64]string)}
}

func (r *fakeSessionRepo) AddUserToken(usrID uint64, token string) error {
	r.tokens[usrID] = token
	return nil
}

func (r *fakeSessionRepo) DeleteUserToken(usrID uint64) error {
	delete(r.tokens, usrID)
	return nil
}

type fakeProjectRepo struct{ db *memDB }

func (r *fakeProjectRepo) Create(p *model.Project) (*model.Project, error) {
	p.ID = r.db.id()
	r.db.projects[p.ID] = p
	r.db.members = append(r.db.members, model.Contributor{
		ID:        r.db.id(),
		ProjectID: p.ID,
		UserID:    p.AuthorID,
		Role:      model.ContributorRoleAuthor,
	})
	return p, nil
}

func (r *fakeProjectRepo) FindByID(id uint64) (*model.Project, error) {
	if p, ok := r.db.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProjectRepo) ListForUser(userID uint64, offset, limit int) ([]model.Project, error) {
	var out []model.Project
	for _, m := range r.db.members {
		if m.UserID != userID {
			continue
		}
		if p, ok := r.db.projects[m.ProjectID]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Save(p *model.Project) error {
	r.db.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) DeleteCascade(id uint64) error {
	for issueID, issue := range r.db.issues {
		if issue.ProjectID != id {
			continue
		}
		for commentID, comment := range r.db.comments {
			if comment.IssueID == issueID {
				delete(r.db.comments, commentID)
			}
		}
		delete(r.db.issues, issueID)
	}
	kept := r.db.members[:0]
	for _, m := range r.db.members {
		if m.ProjectID != id {
			kept = append(kept, m)
		}
	}
	r.db.members = kept
	delete(r.db.projects, id)
	return nil
}

type fakeContributorRepo struct{ db *memDB }

func (r *fakeContributorRepo) Add(member *model.Contributor) error {
	for _, m := range r.db.members {
		if m.ProjectID == member.ProjectID && m.UserID == member.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	member.ID = r.db.id()
	r.db.members = append(r.db.members, *member)
	return nil
}

func (r *fakeContributorRepo) Remove(projectID, userID uint64) error {
	kept := r.db.members[:0]
	for _, m := range r.db.members {
		if m.ProjectID != projectID || m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.db.members = kept
	return nil
}

func (r *fakeContributorRepo) IsContributor(projectID, userID uint64) (bool, error) {
	for _, m := range r.db.members {
		if m.ProjectID == projectID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContributorRepo) ListByProject(projectID uint64) ([]model.Contributor, error) {
	var out []model.Contributor
	for _, m := range r.db.members {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeIssueRepo struct{ db *memDB }

func (r *fakeIssueRepo) record(event *model.ActivityOutbox) {
	if event != nil {
		event.ID = r.db.id()
		r.db.outbox = append(r.db.outbox, *event)
	}
}

func (r *fakeIssueRepo) Create(issue *model.Issue, event *model.ActivityOutbox) error {
	issue.ID = r.db.id()
	r.db.issues[issue.ID] = issue
	r.record(event)
	return nil
}

func (r *fakeIssueRepo) FindByID(id uint64) (*model.Issue, error) {
	if issue, ok := r.db.issues[id]; ok {
		return issue, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIssueRepo) ListByProject(projectID uint64, offset, limit int) ([]model.Issue, error) {
	var out []model.Issue
	for _, issue := range r.db.issues {
		if issue.ProjectID == projectID {
			out = append(out, *issue)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeIssueRepo) Save(issue *model.Issue, event *model.ActivityOutbox) error {
	r.db.issues[issue.ID] = issue
	r.record(event)
	return nil
}

func (r *fakeIssueRepo) DeleteCascade(id uint64, event *model.ActivityOutbox) error {
	for commentID, comment := range r.db.comments {
		if comment.IssueID == id {
			delete(r.db.comments, commentID)
		}
	}
	delete(r.db.issues, id)
	r.record(event)
	return nil
}

type fakeCommentRepo struct{ db *memDB }

func (r *fakeCommentRepo) Create(comment *model.Comment, event *model.ActivityOutbox) error {
	comment.ID = r.db.id()
	r.db.comments[comment.ID] = comment
	if event != nil {
		event.ID = r.db.id()
		r.db.outbox = append(r.db.outbox, *event)
	}
	return nil
}

func (r *fakeCommentRepo) FindByID(id uint64) (*model.Comment, error) {
	if comment, ok := r.db.comments[id]; ok {
		return comment, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) ListByIssue(issueID uint64, offset, limit int) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range r.db.comments {
		if comment.IssueID == issueID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) Save(comment *model.Comment) error {
	r.db.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Delete(id uint64) error {
	delete(r.db.comments, id)
	return nil
}

type fakeOutboxRepo struct{ db *memDB }

func (r *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]model.ActivityOutbox, error) {
	var out []model.ActivityOutbox
	for _, ob := range r.db.outbox {
		if ob.Status == model.OutboxPending {
			out = append(out, ob)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeOutboxRepo) MarkSent(ctx context.Context, id uint64) error {
	for i := range r.db.outbox {
		if r.db.outbox[i].ID == id {
			r.db.outbox[i].Status = model.OutboxSent
		}
	}
	return nil
}

func (r *fakeOutboxRepo) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	for i := range r.db.outbox {
		if r.db.outbox[i].ID == id {
			r.db.outbox[i].Retry++
			if r.db.outbox[i].Retry >= maxRetry {
				r.db.outbox[i].Status = model.OutboxFailed
			}
		}
	}
	return nil
}

type fakeNotifier struct {
	notified []string
}

func (n *fakeNotifier) NotifyAssignment(assignee *model.User, project *model.Project, issue *model.Issue) {
	n.notified = append(n.notified, assignee.Username)
}

// env 一组接好内存仓储的服务
type env struct {
	db       *memDB
	sessions *fakeSessionRepo
	notifier *fakeNotifier
	users    *UserService
	projects *ProjectService
	issues   *IssueService
	comments *CommentService
}

func newEnv() *env {
	db := newMemDB()
	userRepo := &fakeUserRepo{db: db}
	projectRepo := &fakeProjectRepo{db: db}
	memberRepo := &fakeContributorRepo{db: db}
	issueRepo := &fakeIssueRepo{db: db}
	commentRepo := &fakeCommentRepo{db: db}
	sessions := newFakeSessionRepo()
	notifier := &fakeNotifier{}

	return &env{
		db:       db,
		sessions: sessions,
		notifier: notifier,
		users:    NewUserService(userRepo, sessions),
		projects: NewProjectService(projectRepo, memberRepo, userRepo),
		issues:   NewIssueService(issueRepo, projectRepo, memberRepo, userRepo, notifier),
		comments: NewCommentService(commentRepo, issueRepo, memberRepo),
	}
}

func (e *env) signup(username string) *model.User {
	user, err := e.users.Signup(SignupInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Age:      30,
	})
	if err != nil {
		panic(err)
	}
	return user
}

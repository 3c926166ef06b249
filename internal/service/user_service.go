package service

import (
	"errors"
	"fmt"

	"softdesk/internal/model"
	"softdesk/internal/pkg"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     UserRepo
	sessions SessionRepo
}

func NewUserService(repo UserRepo, sessions SessionRepo) *UserService {
	return &UserService{repo: repo, sessions: sessions}
}

type SignupInput struct {
	Username        string
	Email           string
	Password        string
	Age             int
	CanBeContacted  bool
	CanDataBeShared bool
}

// UserUpdate nil 字段表示不修改
type UserUpdate struct {
	Email           *string
	Password        *string
	Age             *int
	CanBeContacted  *bool
	CanDataBeShared *bool
}

func (s *UserService) Signup(in SignupInput) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", pkg.ErrValidation)
	}
	if in.Age < model.MinSignupAge {
		return nil, fmt.Errorf("%w: you must be at least %d years old to register", pkg.ErrValidation, model.MinSignupAge)
	}

	if _, err := s.repo.FindByUsername(in.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", pkg.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", pkg.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:        in.Username,
		Password:        string(hash),
		Email:           in.Email,
		Age:             in.Age,
		CanBeContacted:  in.CanBeContacted,
		CanDataBeShared: in.CanDataBeShared,
	}

	if err := s.repo.Create(user); err != nil {
		// 并发注册撞唯一键
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already taken", pkg.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown user or wrong password", pkg.ErrAuthentication)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: unknown user or wrong password", pkg.ErrAuthentication)
	}

	token, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	// 会话写入 redis，单点登录
	if err = s.sessions.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

// Refresh 换发新 token 对并同步会话，否则新 access 过不了中间件
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	token, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrAuthentication, err)
	}
	claims, err := pkg.ParseAccess(token.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.sessions.AddUserToken(claims.UserID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.sessions.DeleteUserToken(usrID)
}

func (s *UserService) ListUsers(page, size int) ([]model.User, error) {
	offset, limit := normalizePage(page, size)
	return s.repo.List(offset, limit)
}

func (s *UserService) GetUser(actorID uint64, actorRole int, id uint64) (*model.User, error) {
	if actorID != id && actorRole != model.RoleAdmin {
		return nil, fmt.Errorf("%w: you can only access your own profile", pkg.ErrPermission)
	}
	user, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	return user, err
}

func (s *UserService) UpdateUser(actorID uint64, actorRole int, id uint64, upd UserUpdate) (*model.User, error) {
	user, err := s.GetUser(actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	if upd.Age != nil {
		if *upd.Age < model.MinSignupAge {
			return nil, fmt.Errorf("%w: age must be at least %d", pkg.ErrValidation, model.MinSignupAge)
		}
		user.Age = *upd.Age
	}
	if upd.Email != nil && *upd.Email != user.Email {
		if _, err := s.repo.FindByEmail(*upd.Email); err == nil {
			return nil, fmt.Errorf("%w: email already registered", pkg.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *upd.Email
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", pkg.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if upd.CanBeContacted != nil {
		user.CanBeContacted = *upd.CanBeContacted
	}
	if upd.CanDataBeShared != nil {
		user.CanDataBeShared = *upd.CanDataBeShared
	}

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 被遗忘权：本人或管理员删号，同时销毁会话
func (s *UserService) DeleteUser(actorID uint64, actorRole int, id uint64) error {
	if actorID != id && actorRole != model.RoleAdmin {
		return fmt.Errorf("%w: you can only delete your own account", pkg.ErrPermission)
	}
	if _, err := s.repo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	} else if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	return s.sessions.DeleteUserToken(id)
}

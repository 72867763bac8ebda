package service

import (
	"context"
	"os"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// RegisterParams avatar and cover are local temp files saved from the multipart form
type RegisterParams struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

var errUserExists = errno.ConflictErr.WithMessage("User with email or username already exists")

// Register creates the account after uploading avatar and optional cover.
// Assets uploaded by a registration that fails later are removed again.
func (s *UserService) Register(ctx context.Context, req *RegisterParams) (*model.User, error) {
	// 上传前失败的请求也要清理临时文件
	uploaded := false
	defer func() {
		if !uploaded {
			removeTemp(ctx, req.AvatarPath, req.CoverImagePath)
		}
	}()

	if blank := utils.BlankFields(map[string]string{
		"fullName": req.FullName,
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
	}, "fullName", "username", "email", "password"); len(blank) > 0 {
		return nil, errno.MissingFields(blank...)
	}
	username := utils.NormalizeIdentity(req.Username)
	email := utils.NormalizeIdentity(req.Email)
	if !utils.IsValidEmail(email) {
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid email address")
	}
	if req.AvatarPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("Avatar file is required")
	}

	existing, err := s.store.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errUserExists
	}

	uploaded = true
	avatar, err := s.media.Upload(ctx, req.AvatarPath)
	if err != nil {
		removeTemp(ctx, req.CoverImagePath)
		return nil, errors.WithMessage(err, "upload avatar failed")
	}
	var coverURL string
	if req.CoverImagePath != "" {
		cover, err := s.media.Upload(ctx, req.CoverImagePath)
		if err != nil {
			oss.Discard(ctx, s.media, s.publisher, "register failed", avatar.URL)
			return nil, errors.WithMessage(err, "upload cover image failed")
		}
		coverURL = cover.URL
	}

	hash, err := utils.Crypt(req.Password)
	if err != nil {
		oss.Discard(ctx, s.media, s.publisher, "register failed", avatar.URL, coverURL)
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   req.FullName,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
		Password:   hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		oss.Discard(ctx, s.media, s.publisher, "register failed", avatar.URL, coverURL)
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errUserExists
		}
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}

	created, err := s.store.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errno.ServiceErr.WithMessage("Something went wrong while registering the user")
	}
	hlog.CtxInfof(ctx, "user %s registered", created.ID.Hex())
	return created, nil
}

func removeTemp(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s failed: %v", p, err)
		}
	}
}

package service

import (
	"context"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangePassword verifies the old password, stores the new hash and revokes the refresh token
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	// 1. 参数验证
	if blank := utils.BlankFields(map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}, "oldPassword", "newPassword"); len(blank) > 0 {
		return errno.MissingFields(blank...)
	}

	// 2. 验证旧密码
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return errors.WithMessage(err, "获取用户信息失败")
	}
	if user == nil {
		return errno.NotFoundErr.WithMessage("User does not exist")
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.InvalidArgumentErr.WithMessage("Invalid old password")
	}

	// 3. 加密并更新
	hash, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.WithMessage(err, "新密码加密失败")
	}
	if err := s.store.UpdateUserPassword(ctx, userID, hash); err != nil {
		return errors.WithMessage(err, "更新密码失败")
	}

	// 4. 旧的 refresh token 作废
	if err := s.creds.Revoke(ctx, userID); err != nil {
		return err
	}
	hlog.CtxInfof(ctx, "用户 %s 密码修改成功", userID.Hex())
	return nil
}

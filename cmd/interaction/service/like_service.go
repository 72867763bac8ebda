package service

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeStore interface {
	CreateLike(ctx context.Context, like *model.Like) error
	GetLikeByID(ctx context.Context, id primitive.ObjectID) (*model.Like, error)
	FindLike(ctx context.Context, user primitive.ObjectID, target model.LikeTarget) (*model.Like, error)
	DeleteLike(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetLikedVideos(ctx context.Context, user primitive.ObjectID) ([]*model.VideoCard, error)
}

// TargetLookup loads the entities a like can point at
type TargetLookup interface {
	GetVideoByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	GetTweetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
}

// LikeActionService 点赞：toggle 只负责取消，add 负责创建
type LikeActionService struct {
	likes   LikeStore
	targets TargetLookup
}

func NewLikeActionService(likes LikeStore, targets TargetLookup) *LikeActionService {
	return &LikeActionService{likes: likes, targets: targets}
}

var errLikeNotFound = errno.NotFoundErr.WithMessage("Like not found")

func parseTarget(kind model.LikeKind, rawID string) (model.LikeTarget, error) {
	id, err := utils.ParseObjectID(rawID, string(kind)+"Id")
	if err != nil {
		return model.LikeTarget{}, err
	}
	return model.LikeTarget{Kind: kind, ID: id}, nil
}

// ToggleLike removes the actor's like on the target; a missing like is NotFound
func (s *LikeActionService) ToggleLike(ctx context.Context, actor primitive.ObjectID, kind model.LikeKind, rawID string) error {
	target, err := parseTarget(kind, rawID)
	if err != nil {
		return err
	}
	like, err := s.likes.FindLike(ctx, actor, target)
	if err != nil {
		return err
	}
	if like == nil {
		return errLikeNotFound
	}
	deleted, err := s.likes.DeleteLike(ctx, like.ID)
	if err != nil {
		return errors.WithMessage(err, "Error while removing like")
	}
	if !deleted {
		return errLikeNotFound
	}
	hlog.CtxDebugf(ctx, "user %s unliked %s %s", actor.Hex(), kind, target.ID.Hex())
	return nil
}

// AddLike likes an existing target, a second like by the same user is a Conflict
func (s *LikeActionService) AddLike(ctx context.Context, actor primitive.ObjectID, kind model.LikeKind, rawID string) (*model.Like, error) {
	target, err := parseTarget(kind, rawID)
	if err != nil {
		return nil, err
	}
	exists, err := s.targetExists(ctx, target)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage(titleOf(kind) + " not found")
	}

	like := model.NewLike(actor, target, time.Now().UTC())
	if err := s.likes.CreateLike(ctx, like); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errno.ConflictErr.WithMessage("Already liked")
		}
		return nil, errors.WithMessage(err, "Error while adding like")
	}
	return like, nil
}

func (s *LikeActionService) targetExists(ctx context.Context, t model.LikeTarget) (bool, error) {
	switch t.Kind {
	case model.LikeVideo:
		v, err := s.targets.GetVideoByID(ctx, t.ID)
		return v != nil, err
	case model.LikeComment:
		c, err := s.targets.GetCommentByID(ctx, t.ID)
		return c != nil, err
	case model.LikeTweet:
		tw, err := s.targets.GetTweetByID(ctx, t.ID)
		return tw != nil, err
	}
	return false, errno.InvalidArgumentErr.WithMessage("Unknown like target")
}

func titleOf(kind model.LikeKind) string {
	switch kind {
	case model.LikeVideo:
		return "Video"
	case model.LikeComment:
		return "Comment"
	case model.LikeTweet:
		return "Tweet"
	}
	return "Target"
}

func (s *LikeActionService) GetLike(ctx context.Context, rawID string) (*model.Like, error) {
	id, err := utils.ParseObjectID(rawID, "likeId")
	if err != nil {
		return nil, err
	}
	like, err := s.likes.GetLikeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if like == nil {
		return nil, errLikeNotFound
	}
	return like, nil
}

func (s *LikeActionService) LikedVideos(ctx context.Context, actor primitive.ObjectID) ([]*model.VideoCard, error) {
	return s.likes.GetLikedVideos(ctx, actor)
}

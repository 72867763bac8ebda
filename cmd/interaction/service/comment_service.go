package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	ListVideoComments(ctx context.Context, video primitive.ObjectID, page, limit int64) ([]*model.CommentView, error)
	UpdateCommentContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type VideoLookup interface {
	GetVideoByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
}

type LikeCascade interface {
	DeleteLikesByTarget(ctx context.Context, kind model.LikeKind, ids ...primitive.ObjectID) (int64, error)
}

// CommentService 评论，挂在视频下
type CommentService struct {
	comments CommentStore
	videos   VideoLookup
	likes    LikeCascade
}

func NewCommentService(comments CommentStore, videos VideoLookup, likes LikeCascade) *CommentService {
	return &CommentService{comments: comments, videos: videos, likes: likes}
}

var (
	errCommentNotFound = errno.NotFoundErr.WithMessage("Comment not found")
	errNotCommentOwner = errno.ForbiddenErr.WithMessage("You are not authorized to modify this comment")
	errVideoNotFound   = errno.NotFoundErr.WithMessage("Video not found")
)

func (s *CommentService) requireVideo(ctx context.Context, rawID string) (primitive.ObjectID, error) {
	id, err := utils.ParseObjectID(rawID, "videoId")
	if err != nil {
		return id, err
	}
	video, err := s.videos.GetVideoByID(ctx, id)
	if err != nil {
		return id, err
	}
	if video == nil {
		return id, errVideoNotFound
	}
	return id, nil
}

// VideoComments one page of comments, newest first
func (s *CommentService) VideoComments(ctx context.Context, rawVideoID string, page, limit int64) ([]*model.CommentView, error) {
	video, err := s.requireVideo(ctx, rawVideoID)
	if err != nil {
		return nil, err
	}
	return s.comments.ListVideoComments(ctx, video, page, limit)
}

func (s *CommentService) AddComment(ctx context.Context, actor primitive.ObjectID, rawVideoID, content string) (*model.Comment, error) {
	if utils.IsBlank(content) {
		return nil, errno.MissingFields("content")
	}
	video, err := s.requireVideo(ctx, rawVideoID)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{Content: content, Video: video, Owner: actor}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "Error while creating comment")
	}
	return comment, nil
}

func (s *CommentService) ownedComment(ctx context.Context, actor primitive.ObjectID, rawID string) (*model.Comment, error) {
	id, err := utils.ParseObjectID(rawID, "commentId")
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errCommentNotFound
	}
	if comment.Owner != actor {
		return nil, errNotCommentOwner
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actor primitive.ObjectID, rawID, content string) (*model.Comment, error) {
	if utils.IsBlank(content) {
		return nil, errno.MissingFields("content")
	}
	comment, err := s.ownedComment(ctx, actor, rawID)
	if err != nil {
		return nil, err
	}
	updated, err := s.comments.UpdateCommentContent(ctx, comment.ID, content)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while updating the comment")
	}
	if updated == nil {
		return nil, errCommentNotFound
	}
	return updated, nil
}

// DeleteComment removes the comment together with its likes
func (s *CommentService) DeleteComment(ctx context.Context, actor primitive.ObjectID, rawID string) error {
	comment, err := s.ownedComment(ctx, actor, rawID)
	if err != nil {
		return err
	}
	if _, err := s.likes.DeleteLikesByTarget(ctx, model.LikeComment, comment.ID); err != nil {
		return errors.WithMessage(err, "delete comment likes failed")
	}
	if _, err := s.comments.DeleteComment(ctx, comment.ID); err != nil {
		return errors.WithMessage(err, "Error while deleting the comment")
	}
	return nil
}

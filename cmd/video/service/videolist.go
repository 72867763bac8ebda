package service

import (
	"context"
	"strings"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListParams raw query of GET /videos, Page and Limit already normalized
type ListParams struct {
	Page     int64
	Limit    int64
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// ListVideos 分页列表，viewer 能看到自己未发布的视频
func (s *VideoService) ListVideos(ctx context.Context, viewer primitive.ObjectID, req *ListParams) (*model.VideoPage, error) {
	q := model.VideoQuery{
		Page:     req.Page,
		Limit:    req.Limit,
		Search:   strings.TrimSpace(req.Query),
		SortBy:   req.SortBy,
		SortDesc: !strings.EqualFold(req.SortType, "asc"),
		Viewer:   viewer,
	}
	if req.UserID != "" {
		owner, err := utils.ParseObjectID(req.UserID, "userId")
		if err != nil {
			return nil, err
		}
		q.Owner = &owner
	}
	page, err := s.videos.ListVideos(ctx, q)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListVideos failed")
	}
	return page, nil
}

// GetVideo returns the detail and counts the view: views +1 and the id appended to
// the viewer's history. Unpublished videos are only visible to their owner.
func (s *VideoService) GetVideo(ctx context.Context, viewer primitive.ObjectID, rawID string) (*model.VideoDetail, error) {
	id, err := utils.ParseObjectID(rawID, "videoId")
	if err != nil {
		return nil, err
	}
	detail, err := s.videos.GetVideoDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil || (!detail.IsPublished && (detail.Owner == nil || detail.Owner.ID != viewer)) {
		return nil, errVideoNotFound
	}

	ok, err := s.videos.IncrementVideoViews(ctx, id)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while updating video views")
	}
	if !ok {
		return nil, errVideoNotFound
	}
	detail.Views++

	if err := s.history.AppendWatchHistory(ctx, viewer, id); err != nil {
		return nil, errors.WithMessage(err, "append watch history failed")
	}
	return detail, nil
}

// TogglePublish flips isPublished
func (s *VideoService) TogglePublish(ctx context.Context, actor primitive.ObjectID, rawID string) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, actor, rawID)
	if err != nil {
		return nil, err
	}
	updated, err := s.videos.SetVideoPublished(ctx, video.ID, !video.IsPublished)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while updating toggle status of video")
	}
	if updated == nil {
		return nil, errVideoNotFound
	}
	return updated, nil
}

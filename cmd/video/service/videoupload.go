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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PublishParams struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// PublishVideo uploads video and thumbnail and stores the record. Uploaded assets
// are discarded again when a later step fails.
func (s *VideoService) PublishVideo(ctx context.Context, owner primitive.ObjectID, req *PublishParams) (*model.Video, error) {
	if blank := utils.BlankFields(map[string]string{
		"title":       req.Title,
		"description": req.Description,
	}, "title", "description"); len(blank) > 0 {
		removeTemp(ctx, req.VideoPath, req.ThumbnailPath)
		return nil, errno.MissingFields(blank...)
	}
	if req.VideoPath == "" {
		removeTemp(ctx, req.ThumbnailPath)
		return nil, errno.InvalidArgumentErr.WithMessage("Video file is required")
	}
	if req.ThumbnailPath == "" {
		removeTemp(ctx, req.VideoPath)
		return nil, errno.InvalidArgumentErr.WithMessage("Thumbnail file is required")
	}

	videoFile, err := s.media.Upload(ctx, req.VideoPath)
	if err != nil {
		removeTemp(ctx, req.ThumbnailPath)
		return nil, errors.WithMessage(err, "upload video file failed")
	}
	thumbnail, err := s.media.Upload(ctx, req.ThumbnailPath)
	if err != nil {
		oss.Discard(ctx, s.media, s.publisher, "publish failed", videoFile.URL)
		return nil, errors.WithMessage(err, "upload thumbnail failed")
	}

	video := &model.Video{
		VideoFile:   videoFile.URL,
		Thumbnail:   thumbnail.URL,
		Title:       req.Title,
		Description: req.Description,
		Duration:    videoFile.Duration,
		IsPublished: true,
		Owner:       owner,
	}
	if err := s.videos.CreateVideo(ctx, video); err != nil {
		oss.Discard(ctx, s.media, s.publisher, "publish failed", videoFile.URL, thumbnail.URL)
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	hlog.CtxInfof(ctx, "video %s published by %s", video.ID.Hex(), owner.Hex())
	return video, nil
}

type UpdateParams struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// UpdateVideo sets title and description and, when a thumbnail is given, replaces
// the thumbnail and drops the old asset.
func (s *VideoService) UpdateVideo(ctx context.Context, actor primitive.ObjectID, rawID string, req *UpdateParams) (*model.Video, error) {
	if blank := utils.BlankFields(map[string]string{
		"title":       req.Title,
		"description": req.Description,
	}, "title", "description"); len(blank) > 0 {
		removeTemp(ctx, req.ThumbnailPath)
		return nil, errno.MissingFields(blank...)
	}
	video, err := s.ownedVideo(ctx, actor, rawID)
	if err != nil {
		removeTemp(ctx, req.ThumbnailPath)
		return nil, err
	}

	thumbnail := video.Thumbnail
	if req.ThumbnailPath != "" {
		asset, err := s.media.Upload(ctx, req.ThumbnailPath)
		if err != nil {
			return nil, errors.WithMessage(err, "upload thumbnail failed")
		}
		thumbnail = asset.URL
	}

	updated, err := s.videos.UpdateVideo(ctx, video.ID, req.Title, req.Description, thumbnail)
	if err != nil || updated == nil {
		if thumbnail != video.Thumbnail {
			oss.Discard(ctx, s.media, s.publisher, "video update failed", thumbnail)
		}
		if err != nil {
			return nil, errors.WithMessage(err, "Error while updating video")
		}
		return nil, errVideoNotFound
	}
	if thumbnail != video.Thumbnail {
		oss.Discard(ctx, s.media, s.publisher, "thumbnail replaced", video.Thumbnail)
	}
	return updated, nil
}

// DeleteVideo removes the remote assets first and aborts when that fails, so the
// record is never left pointing at nothing. Dependents go before the record itself.
func (s *VideoService) DeleteVideo(ctx context.Context, actor primitive.ObjectID, rawID string) error {
	video, err := s.ownedVideo(ctx, actor, rawID)
	if err != nil {
		return err
	}

	for _, url := range []string{video.Thumbnail, video.VideoFile} {
		if url == "" {
			continue
		}
		if err := s.media.Delete(ctx, url); err != nil {
			hlog.CtxErrorf(ctx, "delete asset %s of video %s failed: %v", url, video.ID.Hex(), err)
			return errno.ServiceErr.WithMessage("Error while removing video assets")
		}
	}

	commentIDs, err := s.cascade.DeleteVideoComments(ctx, video.ID)
	if err != nil {
		return err
	}
	if _, err := s.cascade.DeleteLikesByTarget(ctx, model.LikeComment, commentIDs...); err != nil {
		return err
	}
	if _, err := s.cascade.DeleteLikesByTarget(ctx, model.LikeVideo, video.ID); err != nil {
		return err
	}
	if err := s.cascade.PullVideoFromAll(ctx, video.ID); err != nil {
		return err
	}
	if _, err := s.videos.DeleteVideo(ctx, video.ID); err != nil {
		return errors.WithMessage(err, "Error while deleting the video")
	}
	return nil
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

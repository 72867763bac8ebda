package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VideoStore interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	GetVideoByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	GetVideoDetail(ctx context.Context, id primitive.ObjectID) (*model.VideoDetail, error)
	ListVideos(ctx context.Context, q model.VideoQuery) (*model.VideoPage, error)
	IncrementVideoViews(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateVideo(ctx context.Context, id primitive.ObjectID, title, description, thumbnail string) (*model.Video, error)
	SetVideoPublished(ctx context.Context, id primitive.ObjectID, published bool) (*model.Video, error)
	DeleteVideo(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type HistoryStore interface {
	AppendWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error
}

// CascadeStore removes what references a deleted video
type CascadeStore interface {
	DeleteVideoComments(ctx context.Context, video primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteLikesByTarget(ctx context.Context, kind model.LikeKind, ids ...primitive.ObjectID) (int64, error)
	PullVideoFromAll(ctx context.Context, video primitive.ObjectID) error
}

// Stores the collections the video service touches
type Stores struct {
	Videos  VideoStore
	History HistoryStore
	Cascade CascadeStore
}

type VideoService struct {
	videos    VideoStore
	history   HistoryStore
	cascade   CascadeStore
	media     oss.Gateway
	publisher mq.AssetEventPublisher
}

func NewVideoService(stores Stores, media oss.Gateway, publisher mq.AssetEventPublisher) *VideoService {
	return &VideoService{
		videos:    stores.Videos,
		history:   stores.History,
		cascade:   stores.Cascade,
		media:     media,
		publisher: publisher,
	}
}

var (
	errVideoNotFound = errno.NotFoundErr.WithMessage("Video not found")
	errNotVideoOwner = errno.ForbiddenErr.WithMessage("You are not authorized to modify this video")
)

// ownedVideo loads the video for a mutation by actor: NotFound first, then Forbidden
func (s *VideoService) ownedVideo(ctx context.Context, actor primitive.ObjectID, rawID string) (*model.Video, error) {
	id, err := utils.ParseObjectID(rawID, "videoId")
	if err != nil {
		return nil, err
	}
	video, err := s.videos.GetVideoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errVideoNotFound
	}
	if video.Owner != actor {
		return nil, errNotVideoOwner
	}
	return video, nil
}

package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylistByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error)
	GetPlaylistDetail(ctx context.Context, id primitive.ObjectID) (*model.PlaylistDetail, error)
	ListUserPlaylists(ctx context.Context, owner primitive.ObjectID) ([]*model.PlaylistSummary, error)
	UpdatePlaylist(ctx context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error)
	AddVideoToPlaylist(ctx context.Context, id, video primitive.ObjectID) (*model.Playlist, error)
	RemoveVideoFromPlaylist(ctx context.Context, id, video primitive.ObjectID) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type VideoLookup interface {
	GetVideoByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

type PlaylistService struct {
	playlists PlaylistStore
	videos    VideoLookup
	users     UserLookup
}

func NewPlaylistService(playlists PlaylistStore, videos VideoLookup, users UserLookup) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

var (
	errPlaylistNotFound = errno.NotFoundErr.WithMessage("Playlist not found")
	errNotPlaylistOwner = errno.ForbiddenErr.WithMessage("You are not authorized to modify this playlist")
	errVideoNotFound    = errno.NotFoundErr.WithMessage("Video not found")
)

func (s *PlaylistService) CreatePlaylist(ctx context.Context, owner primitive.ObjectID, name, description string) (*model.Playlist, error) {
	if utils.IsBlank(name) {
		return nil, errno.MissingFields("name")
	}
	playlist := &model.Playlist{Name: name, Description: description, Owner: owner}
	if err := s.playlists.CreatePlaylist(ctx, playlist); err != nil {
		return nil, errors.WithMessage(err, "Error while creating playlist")
	}
	return playlist, nil
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, rawID string) (*model.PlaylistDetail, error) {
	id, err := utils.ParseObjectID(rawID, "playlistId")
	if err != nil {
		return nil, err
	}
	detail, err := s.playlists.GetPlaylistDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, errPlaylistNotFound
	}
	return detail, nil
}

// UserPlaylists playlists owned by the user, most recently updated first
func (s *PlaylistService) UserPlaylists(ctx context.Context, rawUserID string) ([]*model.PlaylistSummary, error) {
	id, err := utils.ParseObjectID(rawUserID, "userId")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("User not found")
	}
	return s.playlists.ListUserPlaylists(ctx, id)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, actor primitive.ObjectID, rawID string) (*model.Playlist, error) {
	id, err := utils.ParseObjectID(rawID, "playlistId")
	if err != nil {
		return nil, err
	}
	playlist, err := s.playlists.GetPlaylistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, errPlaylistNotFound
	}
	if playlist.Owner != actor {
		return nil, errNotPlaylistOwner
	}
	return playlist, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, actor primitive.ObjectID, rawID, name, description string) (*model.Playlist, error) {
	var missing []string
	if utils.IsBlank(name) {
		missing = append(missing, "name")
	}
	if utils.IsBlank(description) {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, errno.MissingFields(missing...)
	}
	playlist, err := s.ownedPlaylist(ctx, actor, rawID)
	if err != nil {
		return nil, err
	}
	updated, err := s.playlists.UpdatePlaylist(ctx, playlist.ID, name, description)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while updating playlist")
	}
	if updated == nil {
		return nil, errPlaylistNotFound
	}
	return updated, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, actor primitive.ObjectID, rawID string) error {
	playlist, err := s.ownedPlaylist(ctx, actor, rawID)
	if err != nil {
		return err
	}
	deleted, err := s.playlists.DeletePlaylist(ctx, playlist.ID)
	if err != nil {
		return errors.WithMessage(err, "Error while deleting playlist")
	}
	if !deleted {
		return errPlaylistNotFound
	}
	return nil
}

// AddVideo 重复添加不报错，集合语义
func (s *PlaylistService) AddVideo(ctx context.Context, actor primitive.ObjectID, rawVideoID, rawPlaylistID string) (*model.Playlist, error) {
	videoID, err := utils.ParseObjectID(rawVideoID, "videoId")
	if err != nil {
		return nil, err
	}
	playlist, err := s.ownedPlaylist(ctx, actor, rawPlaylistID)
	if err != nil {
		return nil, err
	}
	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errVideoNotFound
	}
	updated, err := s.playlists.AddVideoToPlaylist(ctx, playlist.ID, videoID)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while adding video to playlist")
	}
	if updated == nil {
		return nil, errPlaylistNotFound
	}
	return updated, nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actor primitive.ObjectID, rawVideoID, rawPlaylistID string) (*model.Playlist, error) {
	videoID, err := utils.ParseObjectID(rawVideoID, "videoId")
	if err != nil {
		return nil, err
	}
	playlist, err := s.ownedPlaylist(ctx, actor, rawPlaylistID)
	if err != nil {
		return nil, err
	}
	if !contains(playlist.Videos, videoID) {
		return nil, errno.NotFoundErr.WithMessage("Video not in playlist")
	}
	updated, err := s.playlists.RemoveVideoFromPlaylist(ctx, playlist.ID, videoID)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while removing video from playlist")
	}
	if updated == nil {
		return nil, errPlaylistNotFound
	}
	return updated, nil
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

package testsupport

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Store) CreateLike(_ context.Context, like *model.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateLike"); err != nil {
		return err
	}
	target := like.Target()
	for _, l := range s.likes {
		if l.LikedBy == like.LikedBy && l.Target() == target {
			return model.ErrDuplicate
		}
	}
	like.ID = primitive.NewObjectID()
	like.CreatedAt = s.now()
	cp := *like
	s.likes[like.ID] = &cp
	return nil
}

func (s *Store) GetLikeByID(_ context.Context, id primitive.ObjectID) (*model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetLikeByID"); err != nil {
		return nil, err
	}
	l, ok := s.likes[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (s *Store) FindLike(_ context.Context, user primitive.ObjectID, target model.LikeTarget) (*model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("FindLike"); err != nil {
		return nil, err
	}
	for _, l := range s.likes {
		if l.LikedBy == user && l.Target() == target {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteLike(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteLike"); err != nil {
		return false, err
	}
	_, ok := s.likes[id]
	delete(s.likes, id)
	return ok, nil
}

func (s *Store) DeleteLikesByTarget(_ context.Context, kind model.LikeKind, ids ...primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteLikesByTarget"); err != nil {
		return 0, err
	}
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	var n int64
	for id, l := range s.likes {
		if t := l.Target(); t.Kind == kind && set[t.ID] {
			delete(s.likes, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) GetLikedVideos(_ context.Context, user primitive.ObjectID) ([]*model.VideoCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetLikedVideos"); err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for id, l := range s.likes {
		if l.LikedBy == user && l.Video != nil {
			ids = append(ids, id)
		}
	}
	sortNewest(ids, func(id primitive.ObjectID) time.Time { return s.likes[id].CreatedAt })
	out := make([]*model.VideoCard, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.videos[*s.likes[id].Video]; ok {
			out = append(out, s.card(v))
		}
	}
	return out, nil
}

// Likes number of stored likes pointing at target
func (s *Store) Likes(target model.LikeTarget) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.likesOf(target.Kind, target.ID))
}

func (s *Store) CreateSubscription(_ context.Context, sub *model.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateSubscription"); err != nil {
		return err
	}
	for _, existing := range s.subscriptions {
		if existing.Subscriber == sub.Subscriber && existing.Channel == sub.Channel {
			return model.ErrDuplicate
		}
	}
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = s.now()
	cp := *sub
	s.subscriptions[sub.ID] = &cp
	return nil
}

func (s *Store) FindSubscription(_ context.Context, subscriber, channel primitive.ObjectID) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("FindSubscription"); err != nil {
		return nil, err
	}
	for _, sub := range s.subscriptions {
		if sub.Subscriber == subscriber && sub.Channel == channel {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteSubscription(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteSubscription"); err != nil {
		return false, err
	}
	_, ok := s.subscriptions[id]
	delete(s.subscriptions, id)
	return ok, nil
}

func (s *Store) relatedUsers(match func(*model.Subscription) bool, user func(*model.Subscription) primitive.ObjectID) []*model.OwnerSummary {
	var ids []primitive.ObjectID
	for id, sub := range s.subscriptions {
		if match(sub) {
			ids = append(ids, id)
		}
	}
	sortNewest(ids, func(id primitive.ObjectID) time.Time { return s.subscriptions[id].CreatedAt })
	out := make([]*model.OwnerSummary, 0, len(ids))
	for _, id := range ids {
		if o := s.owner(user(s.subscriptions[id])); o != nil {
			o.CoverImage = ""
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) GetChannelSubscribers(_ context.Context, channel primitive.ObjectID) ([]*model.OwnerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetChannelSubscribers"); err != nil {
		return nil, err
	}
	return s.relatedUsers(
		func(sub *model.Subscription) bool { return sub.Channel == channel },
		func(sub *model.Subscription) primitive.ObjectID { return sub.Subscriber },
	), nil
}

func (s *Store) GetSubscribedChannels(_ context.Context, subscriber primitive.ObjectID) ([]*model.OwnerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetSubscribedChannels"); err != nil {
		return nil, err
	}
	return s.relatedUsers(
		func(sub *model.Subscription) bool { return sub.Subscriber == subscriber },
		func(sub *model.Subscription) primitive.ObjectID { return sub.Channel },
	), nil
}

func (s *Store) CreatePlaylist(_ context.Context, playlist *model.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreatePlaylist"); err != nil {
		return err
	}
	now := s.now()
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt, playlist.UpdatedAt = now, now
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	s.playlists[playlist.ID] = copyPlaylist(playlist)
	return nil
}

func copyPlaylist(p *model.Playlist) *model.Playlist {
	cp := *p
	cp.Videos = append([]primitive.ObjectID{}, p.Videos...)
	return &cp
}

func (s *Store) GetPlaylistByID(_ context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetPlaylistByID"); err != nil {
		return nil, err
	}
	p, ok := s.playlists[id]
	if !ok {
		return nil, nil
	}
	return copyPlaylist(p), nil
}

func (s *Store) GetPlaylistDetail(_ context.Context, id primitive.ObjectID) (*model.PlaylistDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetPlaylistDetail"); err != nil {
		return nil, err
	}
	p, ok := s.playlists[id]
	if !ok {
		return nil, nil
	}
	d := &model.PlaylistDetail{
		ID: p.ID, Name: p.Name, Description: p.Description, Owner: s.owner(p.Owner),
		Videos: []*model.VideoCard{}, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	for _, vid := range p.Videos {
		if v, ok := s.videos[vid]; ok {
			d.Videos = append(d.Videos, s.card(v))
			d.TotalViews += v.Views
		}
	}
	d.TotalVideos = int64(len(d.Videos))
	return d, nil
}

func (s *Store) ListUserPlaylists(_ context.Context, owner primitive.ObjectID) ([]*model.PlaylistSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListUserPlaylists"); err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for id, p := range s.playlists {
		if p.Owner == owner {
			ids = append(ids, id)
		}
	}
	sortNewest(ids, func(id primitive.ObjectID) time.Time { return s.playlists[id].UpdatedAt })
	out := make([]*model.PlaylistSummary, 0, len(ids))
	for _, id := range ids {
		p := s.playlists[id]
		out = append(out, &model.PlaylistSummary{
			ID: p.ID, Name: p.Name, Description: p.Description,
			TotalVideos: int64(len(p.Videos)), CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Store) updatePlaylist(method string, id primitive.ObjectID, apply func(p *model.Playlist)) (*model.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(method); err != nil {
		return nil, err
	}
	p, ok := s.playlists[id]
	if !ok {
		return nil, nil
	}
	apply(p)
	p.UpdatedAt = s.now()
	return copyPlaylist(p), nil
}

func (s *Store) UpdatePlaylist(_ context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error) {
	return s.updatePlaylist("UpdatePlaylist", id, func(p *model.Playlist) {
		p.Name, p.Description = name, description
	})
}

func (s *Store) AddVideoToPlaylist(_ context.Context, id, video primitive.ObjectID) (*model.Playlist, error) {
	return s.updatePlaylist("AddVideoToPlaylist", id, func(p *model.Playlist) {
		for _, v := range p.Videos {
			if v == video {
				return
			}
		}
		p.Videos = append(p.Videos, video)
	})
}

func (s *Store) RemoveVideoFromPlaylist(_ context.Context, id, video primitive.ObjectID) (*model.Playlist, error) {
	return s.updatePlaylist("RemoveVideoFromPlaylist", id, func(p *model.Playlist) {
		kept := p.Videos[:0]
		for _, v := range p.Videos {
			if v != video {
				kept = append(kept, v)
			}
		}
		p.Videos = kept
	})
}

func (s *Store) DeletePlaylist(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeletePlaylist"); err != nil {
		return false, err
	}
	_, ok := s.playlists[id]
	delete(s.playlists, id)
	return ok, nil
}

func (s *Store) PullVideoFromAll(_ context.Context, video primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("PullVideoFromAll"); err != nil {
		return err
	}
	for _, p := range s.playlists {
		kept := p.Videos[:0]
		for _, v := range p.Videos {
			if v != video {
				kept = append(kept, v)
			}
		}
		p.Videos = kept
	}
	return nil
}

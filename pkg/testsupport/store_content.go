package testsupport

import (
	"context"
	"sort"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/aggregate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Store) card(v *model.Video) *model.VideoCard {
	return &model.VideoCard{
		ID: v.ID, VideoFile: v.VideoFile, Thumbnail: v.Thumbnail, Title: v.Title,
		Description: v.Description, Duration: v.Duration, Views: v.Views,
		IsPublished: v.IsPublished, Owner: s.owner(v.Owner),
		CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
}

func (s *Store) likesOf(kind model.LikeKind, id primitive.ObjectID) int64 {
	var n int64
	for _, l := range s.likes {
		if t := l.Target(); t.Kind == kind && t.ID == id {
			n++
		}
	}
	return n
}

func (s *Store) CreateVideo(_ context.Context, video *model.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateVideo"); err != nil {
		return err
	}
	now := s.now()
	video.ID = primitive.NewObjectID()
	video.CreatedAt, video.UpdatedAt = now, now
	cp := *video
	s.videos[video.ID] = &cp
	return nil
}

func (s *Store) GetVideoByID(_ context.Context, id primitive.ObjectID) (*model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetVideoByID"); err != nil {
		return nil, err
	}
	v, ok := s.videos[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *Store) GetVideoDetail(_ context.Context, id primitive.ObjectID) (*model.VideoDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetVideoDetail"); err != nil {
		return nil, err
	}
	v, ok := s.videos[id]
	if !ok {
		return nil, nil
	}
	c := s.card(v)
	return &model.VideoDetail{
		ID: c.ID, VideoFile: c.VideoFile, Thumbnail: c.Thumbnail, Title: c.Title,
		Description: c.Description, Duration: c.Duration, Views: c.Views,
		IsPublished: c.IsPublished, Owner: c.Owner, LikesCount: s.likesOf(model.LikeVideo, id),
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}, nil
}

func (s *Store) ListVideos(_ context.Context, q model.VideoQuery) (*model.VideoPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListVideos"); err != nil {
		return nil, err
	}
	search := strings.ToLower(q.Search)
	var matched []*model.Video
	for _, v := range s.videos {
		if !v.IsPublished && v.Owner != q.Viewer {
			continue
		}
		if q.Owner != nil && v.Owner != *q.Owner {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(v.Title), search) &&
			!strings.Contains(strings.ToLower(v.Description), search) {
			continue
		}
		matched = append(matched, v)
	}

	field := q.SortBy
	if !aggregate.VideoSortFields[field] {
		field = "createdAt"
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less, equal bool
		switch field {
		case "views":
			less, equal = a.Views < b.Views, a.Views == b.Views
		case "duration":
			less, equal = a.Duration < b.Duration, a.Duration == b.Duration
		case "title":
			less, equal = a.Title < b.Title, a.Title == b.Title
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			return a.ID.Hex() > b.ID.Hex()
		}
		if q.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	docs := make([]*model.VideoCard, 0)
	start := (q.Page - 1) * q.Limit
	for i := start; i < total && i < start+q.Limit; i++ {
		docs = append(docs, s.card(matched[i]))
	}
	return model.NewVideoPage(docs, total, q.Page, q.Limit), nil
}

func (s *Store) IncrementVideoViews(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("IncrementVideoViews"); err != nil {
		return false, err
	}
	v, ok := s.videos[id]
	if !ok {
		return false, nil
	}
	v.Views++
	return true, nil
}

func (s *Store) updateVideo(method string, id primitive.ObjectID, apply func(v *model.Video)) (*model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(method); err != nil {
		return nil, err
	}
	v, ok := s.videos[id]
	if !ok {
		return nil, nil
	}
	apply(v)
	v.UpdatedAt = s.now()
	cp := *v
	return &cp, nil
}

func (s *Store) UpdateVideo(_ context.Context, id primitive.ObjectID, title, description, thumbnail string) (*model.Video, error) {
	return s.updateVideo("UpdateVideo", id, func(v *model.Video) {
		v.Title, v.Description, v.Thumbnail = title, description, thumbnail
	})
}

func (s *Store) SetVideoPublished(_ context.Context, id primitive.ObjectID, published bool) (*model.Video, error) {
	return s.updateVideo("SetVideoPublished", id, func(v *model.Video) {
		v.IsPublished = published
	})
}

func (s *Store) DeleteVideo(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteVideo"); err != nil {
		return false, err
	}
	_, ok := s.videos[id]
	delete(s.videos, id)
	return ok, nil
}

func (s *Store) CreateTweet(_ context.Context, tweet *model.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateTweet"); err != nil {
		return err
	}
	now := s.now()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	cp := *tweet
	s.tweets[tweet.ID] = &cp
	return nil
}

func (s *Store) GetTweetByID(_ context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetTweetByID"); err != nil {
		return nil, err
	}
	t, ok := s.tweets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *Store) tweetDetail(t *model.Tweet) *model.TweetDetail {
	return &model.TweetDetail{
		ID: t.ID, Content: t.Content, Owner: s.owner(t.Owner),
		LikesCount: s.likesOf(model.LikeTweet, t.ID),
		CreatedAt:  t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func (s *Store) GetTweetDetail(_ context.Context, id primitive.ObjectID) (*model.TweetDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetTweetDetail"); err != nil {
		return nil, err
	}
	t, ok := s.tweets[id]
	if !ok {
		return nil, nil
	}
	return s.tweetDetail(t), nil
}

func (s *Store) ListUserTweets(_ context.Context, owner primitive.ObjectID) ([]*model.TweetDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListUserTweets"); err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for id, t := range s.tweets {
		if t.Owner == owner {
			ids = append(ids, id)
		}
	}
	sortNewest(ids, func(id primitive.ObjectID) time.Time { return s.tweets[id].CreatedAt })
	out := make([]*model.TweetDetail, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.tweetDetail(s.tweets[id]))
	}
	return out, nil
}

func (s *Store) UpdateTweetContent(_ context.Context, id primitive.ObjectID, content string) (*model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateTweetContent"); err != nil {
		return nil, err
	}
	t, ok := s.tweets[id]
	if !ok {
		return nil, nil
	}
	t.Content = content
	t.UpdatedAt = s.now()
	cp := *t
	return &cp, nil
}

func (s *Store) DeleteTweet(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteTweet"); err != nil {
		return false, err
	}
	_, ok := s.tweets[id]
	delete(s.tweets, id)
	return ok, nil
}

func (s *Store) CreateComment(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateComment"); err != nil {
		return err
	}
	now := s.now()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt, comment.UpdatedAt = now, now
	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

func (s *Store) GetCommentByID(_ context.Context, id primitive.ObjectID) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetCommentByID"); err != nil {
		return nil, err
	}
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListVideoComments(_ context.Context, video primitive.ObjectID, page, limit int64) ([]*model.CommentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListVideoComments"); err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for id, c := range s.comments {
		if c.Video == video {
			ids = append(ids, id)
		}
	}
	sortNewest(ids, func(id primitive.ObjectID) time.Time { return s.comments[id].CreatedAt })
	out := make([]*model.CommentView, 0)
	start := (page - 1) * limit
	for i := start; i < int64(len(ids)) && i < start+limit; i++ {
		c := s.comments[ids[i]]
		out = append(out, &model.CommentView{
			ID: c.ID, Content: c.Content, Video: c.Video, Owner: s.owner(c.Owner),
			LikesCount: s.likesOf(model.LikeComment, c.ID),
			CreatedAt:  c.CreatedAt, UpdatedAt: c.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Store) UpdateCommentContent(_ context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateCommentContent"); err != nil {
		return nil, err
	}
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	c.Content = content
	c.UpdatedAt = s.now()
	cp := *c
	return &cp, nil
}

func (s *Store) DeleteComment(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteComment"); err != nil {
		return false, err
	}
	_, ok := s.comments[id]
	delete(s.comments, id)
	return ok, nil
}

func (s *Store) DeleteVideoComments(_ context.Context, video primitive.ObjectID) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteVideoComments"); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0)
	for id, c := range s.comments {
		if c.Video == video {
			ids = append(ids, id)
			delete(s.comments, id)
		}
	}
	return ids, nil
}

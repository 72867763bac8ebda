// Package testsupport in-memory stand-ins for the Mongo stores, the media gateway
// and the event publisher, shared by service and router tests.
package testsupport

import (
	"context"
	"sort"
	"sync"
	"time"

	"VideoTube.com/cmd/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store implements every store interface of the services over maps.
// Calls counts invocations per method; FailOn injects an error into one method.
type Store struct {
	mu    sync.Mutex
	seq   int64
	base  time.Time
	calls map[string]int
	fail  map[string]error

	users         map[primitive.ObjectID]*model.User
	videos        map[primitive.ObjectID]*model.Video
	tweets        map[primitive.ObjectID]*model.Tweet
	comments      map[primitive.ObjectID]*model.Comment
	likes         map[primitive.ObjectID]*model.Like
	subscriptions map[primitive.ObjectID]*model.Subscription
	playlists     map[primitive.ObjectID]*model.Playlist
}

func NewStore() *Store {
	return &Store{
		base:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		calls:         map[string]int{},
		fail:          map[string]error{},
		users:         map[primitive.ObjectID]*model.User{},
		videos:        map[primitive.ObjectID]*model.Video{},
		tweets:        map[primitive.ObjectID]*model.Tweet{},
		comments:      map[primitive.ObjectID]*model.Comment{},
		likes:         map[primitive.ObjectID]*model.Like{},
		subscriptions: map[primitive.ObjectID]*model.Subscription{},
		playlists:     map[primitive.ObjectID]*model.Playlist{},
	}
}

// FailOn makes every later call of method return err, nil err clears it
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, method)
		return
	}
	s.fail[method] = err
}

// Calls number of invocations of method
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls invocations across all methods, zero means the store was never reached
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// hit must be called with s.mu held
func (s *Store) hit(method string) error {
	s.calls[method]++
	return s.fail[method]
}

// now strictly increasing timestamps so "newest first" orders are deterministic
func (s *Store) now() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Millisecond)
}

func newestFirst(ts []time.Time, ids []primitive.ObjectID) func(i, j int) bool {
	return func(i, j int) bool {
		if !ts[i].Equal(ts[j]) {
			return ts[i].After(ts[j])
		}
		return ids[i].Hex() > ids[j].Hex()
	}
}

func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateUser"); err != nil {
		return err
	}
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return model.ErrDuplicate
		}
	}
	now := s.now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.WatchHistory == nil {
		user.WatchHistory = []primitive.ObjectID{}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetUserByID"); err != nil {
		return nil, err
	}
	return s.userCopy(id), nil
}

func (s *Store) userCopy(id primitive.ObjectID) *model.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	cp := *u
	cp.WatchHistory = append([]primitive.ObjectID(nil), u.WatchHistory...)
	return &cp
}

func (s *Store) FindUserByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("FindUserByUsernameOrEmail"); err != nil {
		return nil, err
	}
	for id, u := range s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return s.userCopy(id), nil
		}
	}
	return nil, nil
}

func (s *Store) updateUser(method string, id primitive.ObjectID, apply func(u *model.User) error) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(method); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if err := apply(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = s.now()
	return s.userCopy(id), nil
}

func (s *Store) UpdateUserAccount(_ context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error) {
	return s.updateUser("UpdateUserAccount", id, func(u *model.User) error {
		for _, other := range s.users {
			if other.ID != id && other.Email == email {
				return model.ErrDuplicate
			}
		}
		u.FullName, u.Email = fullName, email
		return nil
	})
}

func (s *Store) UpdateUserAvatar(_ context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	return s.updateUser("UpdateUserAvatar", id, func(u *model.User) error {
		u.Avatar = url
		return nil
	})
}

func (s *Store) UpdateUserCoverImage(_ context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	return s.updateUser("UpdateUserCoverImage", id, func(u *model.User) error {
		u.CoverImage = url
		return nil
	})
}

func (s *Store) UpdateUserPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.updateUser("UpdateUserPassword", id, func(u *model.User) error {
		u.Password = hash
		return nil
	})
	return err
}

func (s *Store) SetRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("SetRefreshToken"); err != nil {
		return err
	}
	if u, ok := s.users[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func (s *Store) AppendWatchHistory(_ context.Context, userID, videoID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("AppendWatchHistory"); err != nil {
		return err
	}
	if u, ok := s.users[userID]; ok {
		u.WatchHistory = append(u.WatchHistory, videoID)
	}
	return nil
}

func (s *Store) GetChannelProfile(_ context.Context, username string, viewer primitive.ObjectID) (*model.ChannelProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetChannelProfile"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		p := &model.ChannelProfile{
			ID: u.ID, FullName: u.FullName, Username: u.Username, Email: u.Email,
			Avatar: u.Avatar, CoverImage: u.CoverImage,
		}
		for _, sub := range s.subscriptions {
			if sub.Channel == u.ID {
				p.SubscribersCount++
				if sub.Subscriber == viewer {
					p.IsSubscribed = true
				}
			}
			if sub.Subscriber == u.ID {
				p.ChannelsSubscribedToCount++
			}
		}
		return p, nil
	}
	return nil, nil
}

func (s *Store) GetWatchHistory(_ context.Context, id primitive.ObjectID) ([]*model.VideoCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetWatchHistory"); err != nil {
		return nil, err
	}
	cards := make([]*model.VideoCard, 0)
	u, ok := s.users[id]
	if !ok {
		return cards, nil
	}
	for _, vid := range u.WatchHistory {
		if v, ok := s.videos[vid]; ok {
			cards = append(cards, s.card(v))
		}
	}
	return cards, nil
}

func (s *Store) owner(id primitive.ObjectID) *model.OwnerSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &model.OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar, CoverImage: u.CoverImage}
}

// sortNewest orders ids by the createdAt returned by at, newest first
func sortNewest(ids []primitive.ObjectID, at func(primitive.ObjectID) time.Time) {
	ts := make([]time.Time, len(ids))
	for i, id := range ids {
		ts[i] = at(id)
	}
	idx := make([]int, len(ids))
	for i := range idx {
		idx[i] = i
	}
	less := newestFirst(ts, ids)
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	sorted := make([]primitive.ObjectID, len(ids))
	for i, j := range idx {
		sorted[i] = ids[j]
	}
	copy(ids, sorted)
}

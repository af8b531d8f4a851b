package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/codewithemmax/WordLinkapp/internal/models"
)

// NewMemoryStores returns map-backed adapters with the same contract as the
// gorm ones. Used by tests; the mutex only protects map integrity, it gives
// callers no read-modify-write atomicity, matching the document-store model.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:         &memoryUserStore{users: map[uint]*models.User{}},
		Posts:         &memoryPostStore{posts: map[uint]*models.Post{}},
		Otps:          &memoryOtpStore{recs: map[string]*models.OtpRecord{}},
		Notifications: &memoryNotificationStore{notifs: map[uint]*models.Notification{}},
	}
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Followers = append(models.IDSet{}, u.Followers...)
	cp.Followings = append(models.IDSet{}, u.Followings...)
	cp.Bookmarks = append(models.IDSet{}, u.Bookmarks...)
	cp.Retweets = append(models.IDSet{}, u.Retweets...)
	return &cp
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.LikedBy = append(models.IDSet{}, p.LikedBy...)
	cp.Comments = make(models.CommentThread, len(p.Comments))
	for i, c := range p.Comments {
		c.Replies = append([]models.Reply{}, c.Replies...)
		cp.Comments[i] = c
	}
	return &cp
}

type memoryUserStore struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func (s *memoryUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *memoryUserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UpdatedAt = time.Now()
	s.users[user.ID] = cloneUser(user)
	return nil
}

type memoryPostStore struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextID uint
}

func (s *memoryPostStore) FindByID(_ context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, nil
}

func (s *memoryPostStore) FindAll(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryPostStore) Insert(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *memoryPostStore) Update(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.UpdatedAt = time.Now()
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *memoryPostStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

type memoryOtpStore struct {
	mu     sync.Mutex
	recs   map[string]*models.OtpRecord
	nextID uint
}

func (s *memoryOtpStore) FindByEmail(_ context.Context, email string) (*models.OtpRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.recs[email]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (s *memoryOtpStore) Upsert(_ context.Context, rec *models.OtpRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.recs[rec.Email]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		s.nextID++
		rec.ID = s.nextID
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	cp := *rec
	s.recs[rec.Email] = &cp
	return nil
}

type memoryNotificationStore struct {
	mu     sync.Mutex
	notifs map[uint]*models.Notification
	nextID uint
}

func (s *memoryNotificationStore) Insert(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n.ID = s.nextID
	n.CreatedAt = time.Now()
	cp := *n
	s.notifs[n.ID] = &cp
	return nil
}

func (s *memoryNotificationStore) FindByID(_ context.Context, id uint) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.notifs[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (s *memoryNotificationStore) FindByUser(_ context.Context, userID uint, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0)
	for _, n := range s.notifs {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryNotificationStore) Update(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notifs[n.ID] = &cp
	return nil
}

func (s *memoryNotificationStore) MarkAllRead(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifs {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

package testing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// MemoryStore is an in-memory [models.Store] for service and handler tests.
//
// Setting Err makes every repository call fail with it.
type MemoryStore struct {
	Err error

	mu       sync.Mutex
	txMu     sync.Mutex
	user     *models.User
	movies   map[int64]*models.Movie
	nextID   int64
	sessions map[string]*models.Session
	flashes  map[string][]string
}

var _ models.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies:   make(map[int64]*models.Movie),
		sessions: make(map[string]*models.Session),
		flashes:  make(map[string][]string),
	}
}

func (s *MemoryStore) Users() models.UserRepository       { return &memoryUsers{s} }
func (s *MemoryStore) Movies() models.MovieRepository     { return &memoryMovies{s} }
func (s *MemoryStore) Sessions() models.SessionRepository { return &memorySessions{s} }

// Atomic restores the store's prior contents when fn fails.
func (s *MemoryStore) Atomic(ctx context.Context, fn func(models.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.copyState()
	s.mu.Unlock()

	if err := fn(txStore{s}); err != nil {
		s.mu.Lock()
		s.user, s.movies, s.nextID, s.sessions, s.flashes =
			snapshot.user, snapshot.movies, snapshot.nextID, snapshot.sessions, snapshot.flashes
		s.mu.Unlock()
		return err
	}
	return nil
}

// txStore runs nested Atomic calls inside the enclosing one.
type txStore struct{ *MemoryStore }

func (t txStore) Atomic(ctx context.Context, fn func(models.Store) error) error { return fn(t) }

func (s *MemoryStore) copyState() *MemoryStore {
	c := NewMemoryStore()
	if s.user != nil {
		c.user = cloneUser(s.user)
	}
	for id, m := range s.movies {
		c.movies[id] = m.Clone()
	}
	c.nextID = s.nextID
	for id, sess := range s.sessions {
		c.sessions[id] = cloneSession(sess)
	}
	for id, msgs := range s.flashes {
		c.flashes[id] = append([]string(nil), msgs...)
	}
	return c
}

func cloneUser(u *models.User) *models.User {
	c := models.NewUser(u.Name(), u.Username())
	c.SetID(u.ID())
	c.SetPasswordDigest(u.PasswordDigest())
	c.SetCreatedAt(u.CreatedAt())
	c.SetUpdatedAt(u.UpdatedAt())
	return c
}

func cloneSession(sess *models.Session) *models.Session {
	c := &models.Session{}
	c.SetID(sess.ID())
	c.SetUserID(sess.UserID())
	c.SetCreatedAt(sess.CreatedAt())
	c.SetExpiresAt(sess.ExpiresAt())
	return c
}

type memoryUsers struct{ s *MemoryStore }

func (r *memoryUsers) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if r.s.user != nil {
		return shared.ErrUserExists
	}
	r.s.user = cloneUser(user)
	return nil
}

func (r *memoryUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if r.s.user == nil || r.s.user.ID() != id {
		return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	return cloneUser(r.s.user), nil
}

func (r *memoryUsers) First(ctx context.Context) (*models.User, error) {
	return r.Get(ctx, models.SingletonUserID)
}

func (r *memoryUsers) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if r.s.user == nil {
		return fmt.Errorf("%w: user %d", shared.ErrNotFound, user.ID())
	}
	user.SetUpdatedAt(time.Now().UTC())
	r.s.user = cloneUser(user)
	return nil
}

func (r *memoryUsers) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.user == nil {
		return fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	r.s.user = nil
	for sid, sess := range r.s.sessions {
		if sess.UserID() == id {
			delete(r.s.sessions, sid)
			delete(r.s.flashes, sid)
		}
	}
	return nil
}

func (r *memoryUsers) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	if r.s.user == nil {
		return 0, nil
	}
	return 1, nil
}

type memoryMovies struct{ s *MemoryStore }

func (r *memoryMovies) Create(ctx context.Context, movie *models.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	r.s.nextID++
	movie.SetID(r.s.nextID)
	r.s.movies[movie.ID()] = movie.Clone()
	return nil
}

func (r *memoryMovies) Get(ctx context.Context, id int64) (*models.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	m, ok := r.s.movies[id]
	if !ok {
		return nil, fmt.Errorf("%w: movie %d", shared.ErrNotFound, id)
	}
	return m.Clone(), nil
}

func (r *memoryMovies) Update(ctx context.Context, movie *models.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, ok := r.s.movies[movie.ID()]; !ok {
		return fmt.Errorf("%w: movie %d", shared.ErrNotFound, movie.ID())
	}
	movie.SetUpdatedAt(time.Now().UTC())
	r.s.movies[movie.ID()] = movie.Clone()
	return nil
}

func (r *memoryMovies) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("%w: movie %d", shared.ErrNotFound, id)
	}
	delete(r.s.movies, id)
	return nil
}

func (r *memoryMovies) List(ctx context.Context) ([]*models.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	movies := make([]*models.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		movies = append(movies, m.Clone())
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID() < movies[j].ID() })
	return movies, nil
}

func (r *memoryMovies) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return len(r.s.movies), nil
}

type memorySessions struct{ s *MemoryStore }

func (r *memorySessions) Create(ctx context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	r.s.sessions[session.ID()] = cloneSession(session)
	return nil
}

func (r *memorySessions) Get(ctx context.Context, id string) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", shared.ErrNotFound, id)
	}
	return cloneSession(sess), nil
}

func (r *memorySessions) Update(ctx context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.sessions[session.ID()]; !ok {
		return fmt.Errorf("%w: session %s", shared.ErrNotFound, session.ID())
	}
	r.s.sessions[session.ID()] = cloneSession(session)
	return nil
}

func (r *memorySessions) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.sessions[id]; !ok {
		return fmt.Errorf("%w: session %s", shared.ErrNotFound, id)
	}
	delete(r.s.sessions, id)
	delete(r.s.flashes, id)
	return nil
}

func (r *memorySessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var removed int64
	for id, sess := range r.s.sessions {
		if sess.Expired(now) {
			delete(r.s.sessions, id)
			delete(r.s.flashes, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memorySessions) PushFlash(ctx context.Context, sessionID, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.flashes[sessionID] = append(r.s.flashes[sessionID], message)
	return nil
}

func (r *memorySessions) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	messages := r.s.flashes[sessionID]
	delete(r.s.flashes, sessionID)
	return messages, nil
}

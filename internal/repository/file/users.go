package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"boxoffice/internal/domain"
	"boxoffice/internal/repository"
)

// UserStore keeps one "username passwordhash" pair per line. The mutex
// serializes the check-then-append in Create; without it two concurrent
// signups of the same username could both pass the lookup.
type UserStore struct {
	mu   sync.Mutex
	path string
}

func NewUserStore(dir string) *UserStore {
	return &UserStore{path: filepath.Join(dir, "users.txt")}
}

func (s *UserStore) Lookup(_ context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(username)
}

func (s *UserStore) lookup(username string) (domain.User, error) {
	const op = "file.UserStore.Lookup"

	f, err := os.Open(s.path)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[0] == username {
			return domain.User{Username: fields[0], PasswordHash: fields[1]}, nil
		}
	}
	return domain.User{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
}

func (s *UserStore) Create(_ context.Context, user domain.User) error {
	const op = "file.UserStore.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(user.Username); err == nil {
		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", user.Username, user.PasswordHash); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}

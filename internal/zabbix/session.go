package zabbix

import (
	"context"
	"sync"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
)

// Session is an authenticated connection to the API. Close must be called
// once the caller is done with it; it logs the token out exactly once.
type Session struct {
	client *Client
	token  string

	closeOnce sync.Once
	closeErr  error
}

// Login authenticates and returns a session. Any failure is reported as an
// authentication error.
func (c *Client) Login(ctx context.Context, user, password string) (*Session, error) {
	var token string
	err := c.call(ctx, "", "user.login", map[string]string{
		"username": user,
		"password": password,
	}, &token)
	if err != nil {
		return nil, errors.New().Wrap(ErrAuthentication, err).WithData(user)
	}

	if token == "" {
		return nil, errors.New().WithData(ErrAuthentication, user)
	}

	logger.Debug().Str("user", user).Msg("Logged in")

	return &Session{client: c, token: token}, nil
}

// Close logs out. Later calls return the first call's result.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if err := s.client.call(ctx, s.token, "user.logout", []string{}, nil); err != nil {
			s.closeErr = errors.New().Wrap(ErrLogout, err)
			return
		}
		logger.Debug().Msg("Logged out")
	})

	return s.closeErr
}

package services_test

import (
	"context"
	"io"
)

type fakeStorage struct {
	keys []string
	err  error
}

func (s *fakeStorage) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.test/" + key, nil
}

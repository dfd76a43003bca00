package services

import (
	"context"

	"github.com/dmitrijs2005/ganfan/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ganfan/internal/common"
)

// SessionStore is the single current-session slot.
type SessionStore interface {
	// Load returns "" when the slot is empty.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataSessionStore keeps the token in the local metadata table.
type MetadataSessionStore struct {
	repo metadata.Repository
}

func NewMetadataSessionStore(repo metadata.Repository) *MetadataSessionStore {
	return &MetadataSessionStore{repo: repo}
}

func (s *MetadataSessionStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *MetadataSessionStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.SessionTokenKey, []byte(token))
}

func (s *MetadataSessionStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.SessionTokenKey)
}

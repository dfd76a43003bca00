package tokenx

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var diner = models.User{ID: "u-1", Nickname: "小明", Role: models.RoleDiner}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := NewCodec(WithClock(fixedClock(now)))

	tok, err := c.Issue(diner)
	require.NoError(t, err)

	s, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, diner.ID, s.UserID)
	assert.Equal(t, diner.Nickname, s.Nickname)
	assert.Equal(t, diner.Role, s.Role)
	assert.WithinDuration(t, now.Add(30*24*time.Hour), s.ExpiresAt, time.Millisecond)
}

func TestCodec_RoundTrip_RealClock(t *testing.T) {
	t.Parallel()

	before := time.Now()
	c := NewCodec()
	tok, err := c.Issue(diner)
	require.NoError(t, err)

	s, err := c.Verify(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(DefaultTTL), s.ExpiresAt, 5*time.Second)
}

func TestCodec_ExpiredToken(t *testing.T) {
	t.Parallel()

	c := NewCodec()
	tok, err := c.Encode(models.NewSession(diner, time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	s, err := c.Verify(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.Nil(t, s)
}

func TestCodec_ExpiresWhenClockMovesPastTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 2, 1, 17, 5, 0, 0, time.UTC)
	clock := now
	c := NewCodec(WithClock(func() time.Time { return clock }))

	tok, err := c.Issue(diner)
	require.NoError(t, err)

	clock = now.Add(DefaultTTL)
	_, err = c.Verify(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestCodec_Malformed(t *testing.T) {
	t.Parallel()

	c := NewCodec()
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-a-token%%%"},
		{"base64 of garbage", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"json without id", base64.StdEncoding.EncodeToString([]byte(`{"role":"chef","exp":99999999999999}`))},
		{"unknown role", base64.StdEncoding.EncodeToString([]byte(`{"id":"x","role":"admin","exp":99999999999999}`))},
		{"json null", base64.StdEncoding.EncodeToString([]byte(`null`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				s   *models.Session
				err error
			)
			require.NotPanics(t, func() { s, err = c.Verify(tt.token) })
			require.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestNew_PicksCodecBySecret(t *testing.T) {
	t.Parallel()

	_, plain := New("").(*Codec)
	assert.True(t, plain)

	_, signed := New("s3cret").(*SignedCodec)
	assert.True(t, signed)
}

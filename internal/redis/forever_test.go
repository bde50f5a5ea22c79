package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/imtaco/interview-lobby/internal/log"
)

type ForeverTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	forever Forever
}

func TestForeverSuite(t *testing.T) {
	suite.Run(t, new(ForeverTestSuite))
}

func (s *ForeverTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.forever = NewForever(s.client, 10*time.Millisecond, 50*time.Millisecond, log.NewNop())
}

func (s *ForeverTestSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *ForeverTestSuite) TestHashRoundTrip() {
	ctx := context.Background()

	s.Require().NoError(s.forever.HSet(ctx, "note:a", "content", "hello", "mode", "notes"))
	got, err := s.forever.HGetAll(ctx, "note:a")
	s.Require().NoError(err)
	s.Equal(map[string]string{"content": "hello", "mode": "notes"}, got)

	s.Require().NoError(s.forever.Expire(ctx, "note:a", time.Minute))
	s.Equal(time.Minute, s.mr.TTL("note:a"))

	s.Require().NoError(s.forever.Del(ctx, "note:a"))
	s.False(s.mr.Exists("note:a"))
}

func (s *ForeverTestSuite) TestMissingHashIsEmpty() {
	got, err := s.forever.HGetAll(context.Background(), "note:none")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *ForeverTestSuite) TestRetriesUntilContextDone() {
	s.mr.SetError("ERR unavailable")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.forever.HSet(ctx, "note:a", "content", "x")
	s.Error(err)
}

func (s *ForeverTestSuite) TestRecoversAfterTransientError() {
	s.mr.SetError("ERR unavailable")
	go func() {
		time.Sleep(30 * time.Millisecond)
		s.mr.SetError("")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.NoError(s.forever.HSet(ctx, "note:a", "content", "x"))
	s.Equal("x", s.mr.HGet("note:a", "content"))
}

func (s *ForeverTestSuite) TestPing() {
	s.NoError(Ping(context.Background(), s.client))
}

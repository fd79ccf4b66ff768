package lookups_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/redis"
	"github.com/KirkDiggler/rpg-ruletext/internal/repositories/lookups"
	"github.com/KirkDiggler/rpg-ruletext/internal/testutils"
)

type RedisLookupsTestSuite struct {
	suite.Suite
	client  redis.Client
	cleanup func()
	repo    lookups.Repository
	ctx     context.Context
}

func TestRedisLookupsSuite(t *testing.T) {
	suite.Run(t, new(RedisLookupsTestSuite))
}

func (s *RedisLookupsTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()

	repo, err := lookups.NewRedis(&lookups.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisLookupsTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisLookupsTestSuite) TestNewRedis() {
	testCases := []struct {
		name    string
		config  *lookups.RedisConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:   "success with valid config",
			config: &lookups.RedisConfig{Client: s.client},
		},
		{
			name:    "error with nil config",
			config:  nil,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name:    "error with nil client",
			config:  &lookups.RedisConfig{},
			wantErr: true,
			errMsg:  "client cannot be nil",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := lookups.NewRedis(tc.config)
			if tc.wantErr {
				s.Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(repo)
				return
			}
			s.NoError(err)
			s.NotNil(repo)
		})
	}
}

func (s *RedisLookupsTestSuite) TestUpsertThenList() {
	entries := []*lookup.Entry{
		{ID: 2, Code: "DEX", Name: "Dexterity"},
		{ID: 1, Code: "STR", Name: "Strength", Aliases: []string{"str"}},
	}

	out, err := s.repo.Upsert(s.ctx, &lookups.UpsertInput{Kind: lookup.KindAbility, Entries: entries})
	s.Require().NoError(err)
	s.Equal(2, out.Written)

	listed, err := s.repo.ListByKind(s.ctx, &lookups.ListByKindInput{Kind: lookup.KindAbility})
	s.Require().NoError(err)
	s.Require().Len(listed.Entries, 2)
	s.Equal("STR", listed.Entries[0].Code)
	s.Equal([]string{"str"}, listed.Entries[0].Aliases)
	s.Equal("DEX", listed.Entries[1].Code)
}

func (s *RedisLookupsTestSuite) TestUpsertReplacesByCode() {
	_, err := s.repo.Upsert(s.ctx, &lookups.UpsertInput{
		Kind:    lookup.KindLanguage,
		Entries: []*lookup.Entry{{ID: 1, Code: "elvish", Name: "Elvish"}},
	})
	s.Require().NoError(err)

	_, err = s.repo.Upsert(s.ctx, &lookups.UpsertInput{
		Kind:    lookup.KindLanguage,
		Entries: []*lookup.Entry{{ID: 1, Code: "elvish", Name: "Elvish (Sindarin)"}},
	})
	s.Require().NoError(err)

	listed, err := s.repo.ListByKind(s.ctx, &lookups.ListByKindInput{Kind: lookup.KindLanguage})
	s.Require().NoError(err)
	s.Require().Len(listed.Entries, 1)
	s.Equal("Elvish (Sindarin)", listed.Entries[0].Name)
}

func (s *RedisLookupsTestSuite) TestListByKindErrors() {
	testCases := []struct {
		name  string
		input *lookups.ListByKindInput
		check func(error) bool
	}{
		{name: "nil input", input: nil, check: errors.IsInvalidArgument},
		{name: "unknown kind", input: &lookups.ListByKindInput{Kind: "monster"}, check: errors.IsInvalidArgument},
		{name: "empty table", input: &lookups.ListByKindInput{Kind: lookup.KindSkill}, check: errors.IsNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.repo.ListByKind(s.ctx, tc.input)
			s.Nil(out)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *RedisLookupsTestSuite) TestListByKindCorruptEntry() {
	s.Require().NoError(s.client.HSet(s.ctx, lookups.GetKey(lookup.KindSkill), "athletics", "{not json").Err())

	out, err := s.repo.ListByKind(s.ctx, &lookups.ListByKindInput{Kind: lookup.KindSkill})
	s.Nil(out)
	s.True(errors.IsDataLoss(err))
}

func (s *RedisLookupsTestSuite) TestUpsertRejectsEntryWithoutCode() {
	out, err := s.repo.Upsert(s.ctx, &lookups.UpsertInput{
		Kind:    lookup.KindSkill,
		Entries: []*lookup.Entry{{Name: "Athletics"}},
	})
	s.Nil(out)
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisLookups_StoreFailures(t *testing.T) {
	client, mock := testutils.CreateMockRedisClient(t)
	repo, err := lookups.NewRedis(&lookups.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	mock.ExpectHGetAll(lookups.GetKey(lookup.KindCondition)).SetErr(fmt.Errorf("dial tcp 127.0.0.1:6379: connect: connection refused"))
	_, err = repo.ListByKind(ctx, &lookups.ListByKindInput{Kind: lookup.KindCondition})
	if !errors.IsUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}

	entry := &lookup.Entry{ID: 1, Code: "blinded", Name: "Blinded"}
	data, _ := json.Marshal(entry)
	mock.ExpectHSet(lookups.GetKey(lookup.KindCondition), "blinded", string(data)).SetErr(context.DeadlineExceeded)
	_, err = repo.Upsert(ctx, &lookups.UpsertInput{Kind: lookup.KindCondition, Entries: []*lookup.Entry{entry}})
	if errors.GetCode(err) != errors.CodeDeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

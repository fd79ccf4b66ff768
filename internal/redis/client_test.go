package redis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestNewClient() {
	testCases := []struct {
		name     string
		endpoint string
		opts     *redis.Options
		wantErr  bool
	}{
		{name: "host and port", endpoint: "localhost:6379"},
		{name: "url form", endpoint: "redis://localhost:6379/2"},
		{name: "with options", endpoint: "localhost:6379", opts: &redis.Options{PoolSize: 4, DialTimeout: time.Second}},
		{name: "empty endpoint", endpoint: "", wantErr: true},
		{name: "bad url", endpoint: "redis://localhost:6379/notadb", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			client, err := redis.NewClient(tc.endpoint, tc.opts)
			if tc.wantErr {
				s.Error(err)
				s.Nil(client)
				return
			}
			s.Require().NoError(err)
			s.NotNil(client)
			s.NoError(client.Close())
		})
	}
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisCacheGetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Minute, zap.NewNop())

	mock.ExpectGet("invoice-dashboard:gen:/dashboard/invoices").SetVal("3")
	mock.ExpectGet("invoice-dashboard:page:/dashboard/invoices:3?query=lee").SetVal(`{"invoices":[]}`)

	body, gen, ok := c.Get(context.Background(), invoicesPath, "query=lee")
	require.True(t, ok)
	assert.Equal(t, int64(3), gen)
	assert.Equal(t, `{"invoices":[]}`, string(body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheGetMissWithoutGeneration(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Minute, zap.NewNop())

	mock.ExpectGet("invoice-dashboard:gen:/dashboard/invoices").RedisNil()
	mock.ExpectGet("invoice-dashboard:page:/dashboard/invoices:0?").RedisNil()

	_, gen, ok := c.Get(context.Background(), invoicesPath, "")
	assert.False(t, ok)
	assert.Equal(t, int64(0), gen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheSetUsesGeneration(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Minute, zap.NewNop())

	body := []byte(`{"invoices":[]}`)
	mock.ExpectSet("invoice-dashboard:page:/dashboard/invoices:7?page=2", body, time.Minute).SetVal("OK")

	c.Set(context.Background(), invoicesPath, "page=2", 7, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheUnavailableGenerationSkipsSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Minute, zap.NewNop())

	mock.ExpectGet("invoice-dashboard:gen:/dashboard/invoices").SetErr(errors.New("connection refused"))

	_, gen, ok := c.Get(context.Background(), invoicesPath, "")
	require.False(t, ok)

	c.Set(context.Background(), invoicesPath, "", gen, []byte("x"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRevalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Minute, zap.NewNop())

	mock.ExpectIncr("invoice-dashboard:gen:/dashboard/invoices").SetVal(4)
	require.NoError(t, c.Revalidate(context.Background(), invoicesPath))

	mock.ExpectIncr("invoice-dashboard:gen:/dashboard/invoices").SetErr(errors.New("readonly"))
	assert.Error(t, c.Revalidate(context.Background(), invoicesPath))

	assert.NoError(t, mock.ExpectationsWereMet())
}

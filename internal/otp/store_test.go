package otp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-quiz/internal/adapter"
	"campus-quiz/internal/domain"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestPutAndVerify(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(adapter.NewRedisCacheAdapter(db), DefaultTTL)

	pending := PendingSignup{
		Username:     "juan",
		Email:        "juan@example.com",
		PasswordHash: "$2a$10$hash",
		Strand:       "STEM",
		Code:         "123456",
	}
	payload, err := json.Marshal(pending)
	require.NoError(t, err)

	key := "campusquiz:auth:pending_signup:juan@example.com"
	mock.ExpectSet(key, string(payload), DefaultTTL).SetVal("OK")
	require.NoError(t, store.Put(context.Background(), pending))

	mock.ExpectGet(key).SetVal(string(payload))
	mock.ExpectDel(key).SetVal(1)
	got, err := store.Verify(context.Background(), "juan@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "juan", got.Username)
	assert.Equal(t, "STEM", got.Strand)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyWrongCode(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(adapter.NewRedisCacheAdapter(db), DefaultTTL)

	pending := PendingSignup{Email: "juan@example.com", Code: "123456"}
	payload, _ := json.Marshal(pending)

	key := "campusquiz:auth:pending_signup:juan@example.com"
	mock.ExpectGet(key).SetVal(string(payload))

	_, err := store.Verify(context.Background(), "juan@example.com", "999999")
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeInvalidOTP, derr.Code)
}

func TestVerifyExpired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(adapter.NewRedisCacheAdapter(db), DefaultTTL)

	key := "campusquiz:auth:pending_signup:late@example.com"
	mock.ExpectGet(key).RedisNil()

	_, err := store.Verify(context.Background(), "late@example.com", "123456")
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeOTPExpired, derr.Code)
}

func TestNewStoreDefaultsTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(adapter.NewRedisCacheAdapter(db), 0)

	pending := PendingSignup{Email: "x@example.com", Code: "000000"}
	payload, _ := json.Marshal(pending)

	mock.ExpectSet("campusquiz:auth:pending_signup:x@example.com", string(payload), 10*time.Minute).SetVal("OK")
	require.NoError(t, store.Put(context.Background(), pending))
	require.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/testutil"
)

func TestCredentialService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						user := args.Get(1).(*model.User)
						user.ID = 1
					}).
					Return(nil)
			},
		},
		{
			name:          "missing username",
			username:      "   ",
			password:      "pw1",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrMissingCredentials,
		},
		{
			name:          "missing password",
			username:      "alice",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrMissingCredentials,
		},
		{
			name:          "password over 72 bytes",
			username:      "bob",
			password:      strings.Repeat("a", 80),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrPasswordTooLong,
		},
		{
			name:     "username already exists",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:     "unique violation on insert",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 9, Username: "alice"}, nil).Once()
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewCredentialService(mockRepo, nil, bcrypt.MinCost)
			id, err := svc.Register(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Zero(t, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(1), id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCredentialService_Register_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	var stored *model.User
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.User) }).
		Return(nil)

	svc := NewCredentialService(mockRepo, nil, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), " alice ", "pw1")
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Username)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))
}

func TestCredentialService_Verify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantID    uint
		wantOK    bool
		wantErr   bool
	}{
		{
			name:     "matching password",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			wantID: 1,
			wantOK: true,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "pw2",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
		},
		{
			name:     "empty password",
			username: "alice",
			password: "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
		},
		{
			name:     "unknown user",
			username: "mallory",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "mallory").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:     "repository failure",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewCredentialService(mockRepo, nil, bcrypt.MinCost)
			id, ok, err := svc.Verify(context.Background(), tt.username, tt.password)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCredentialService_GetUser_UsesCache(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "alice", PasswordHash: "h"}, nil).Once()

	svc := NewCredentialService(mockRepo, cache.New(client), bcrypt.MinCost)

	first, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "alice", second.Username)
	assert.Empty(t, second.PasswordHash)
	mockRepo.AssertExpectations(t)
}

func TestCredentialService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCredentialService(mockRepo, nil, bcrypt.MinCost)
	_, err := svc.GetUser(context.Background(), 5)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCredentialService_Verify_UnknownUserBurnsAtConfiguredCost(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "mallory").Return(nil, gorm.ErrRecordNotFound)

	cost := bcrypt.MinCost + 1
	svc := NewCredentialService(mockRepo, nil, cost).(*credentialService)
	_, ok, err := svc.Verify(context.Background(), "mallory", "pw1")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := bcrypt.Cost([]byte(svc.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, cost, got)
}

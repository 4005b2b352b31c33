package service

import (
	"context"
	"sync"
	"time"

	"educhat-backend/internal/cache"
	"educhat-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockExamResultRepository is a mock implementation of
// domain.ExamResultRepository.
type MockExamResultRepository struct {
	mock.Mock
}

func (m *MockExamResultRepository) CreateResult(ctx context.Context, result *domain.ExamResult) (*domain.ExamResult, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamResult), args.Error(1)
}

func (m *MockExamResultRepository) GetResultsByUserID(ctx context.Context, userID int64) ([]domain.ExamResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExamResult), args.Error(1)
}

func (m *MockExamResultRepository) GetResultsByUserAndCourse(ctx context.Context, userID int64, courseID string) ([]domain.ExamResult, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExamResult), args.Error(1)
}

// MockLessonCompletionRepository is a mock implementation of
// domain.LessonCompletionRepository.
type MockLessonCompletionRepository struct {
	mock.Mock
}

func (m *MockLessonCompletionRepository) UpsertCompletion(ctx context.Context, completion *domain.LessonCompletion) (*domain.LessonCompletion, error) {
	args := m.Called(ctx, completion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonCompletion), args.Error(1)
}

func (m *MockLessonCompletionRepository) GetCompletionsByUserAndCourse(ctx context.Context, userID int64, courseID string) ([]domain.LessonCompletion, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LessonCompletion), args.Error(1)
}

// fakeTokenStore is an in-memory RefreshTokenStore used to exercise refresh
// token rotation without Redis.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int64)}
}

func (f *fakeTokenStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenID] = userID
	return nil
}

func (f *fakeTokenStore) Get(ctx context.Context, tokenID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.tokens[tokenID]
	if !ok {
		return 0, cache.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tokenID)
	return nil
}

func (f *fakeTokenStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

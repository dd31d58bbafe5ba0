package mocks

import (
	"context"

	"docshelf/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Recent(ctx context.Context) []model.DocumentRecord {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.DocumentRecord)
}

func (m *MockLibraryService) AddRecent(ctx context.Context, rec model.DocumentRecord) (model.DocumentRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return model.DocumentRecord{}, args.Error(1)
	}
	return args.Get(0).(model.DocumentRecord), args.Error(1)
}

func (m *MockLibraryService) ClearRecent(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLibraryService) Bookmarks(ctx context.Context) []model.DocumentRecord {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.DocumentRecord)
}

func (m *MockLibraryService) AddBookmark(ctx context.Context, rec model.DocumentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockLibraryService) RemoveBookmark(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	return args.Error(0)
}

func (m *MockLibraryService) Bookmarked(ctx context.Context, uri string) bool {
	args := m.Called(ctx, uri)
	return args.Bool(0)
}

func (m *MockLibraryService) Search(ctx context.Context, query string) []model.DocumentRecord {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.DocumentRecord)
}

package mocks

import (
	"context"
	"io"

	"docshelf/internal/model"
	"docshelf/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, pages *int) (model.DocumentRecord, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size, pages)
	if args.Get(0) == nil {
		return model.DocumentRecord{}, args.Error(1)
	}
	return args.Get(0).(model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, uri string) (*service.OpenResult, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OpenResult), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	return args.Error(0)
}

package services

import (
	"github.com/stretchr/testify/mock"

	"nucdash/pkg/contracts/domain"
)

// MockDatasetProvider is a mock for the DatasetProvider interface
type MockDatasetProvider struct {
	mock.Mock
}

func (m *MockDatasetProvider) Views() []domain.ViewInfo {
	args := m.Called()
	views, _ := args.Get(0).([]domain.ViewInfo)
	return views
}

func (m *MockDatasetProvider) Dataset() (domain.DatasetInfo, error) {
	args := m.Called()
	return args.Get(0).(domain.DatasetInfo), args.Error(1)
}

package recordstore

import (
	"context"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// ReplaceTable implements the RecordStore interface.
func (m *MockRecordStore) ReplaceTable(ctx context.Context, table schema.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

// ReadTable implements the RecordStore interface.
func (m *MockRecordStore) ReadTable(ctx context.Context, name schema.TableName) (schema.Table, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(schema.Table), args.Error(1)
}

// ColumnNames implements the RecordStore interface.
func (m *MockRecordStore) ColumnNames(ctx context.Context, name schema.TableName) ([]string, error) {
	args := m.Called(ctx, name)
	cols, _ := args.Get(0).([]string)
	return cols, args.Error(1)
}

// RecordIngestion implements the RecordStore interface.
func (m *MockRecordStore) RecordIngestion(ctx context.Context, run schema.IngestionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// LastIngestion implements the RecordStore interface.
func (m *MockRecordStore) LastIngestion(ctx context.Context) (schema.IngestionRun, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.IngestionRun), args.Bool(1), args.Error(2)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

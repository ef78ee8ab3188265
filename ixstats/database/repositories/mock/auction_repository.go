package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/ixstats/engine/ixstats/database/models"
	bun "github.com/uptrace/bun"
	gomock "go.uber.org/mock/gomock"
)

// MockAuctionRepository is a mock of AuctionRepository interface.
type MockAuctionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAuctionRepositoryMockRecorder
	isgomock struct{}
}

// MockAuctionRepositoryMockRecorder is the mock recorder for MockAuctionRepository.
type MockAuctionRepositoryMockRecorder struct {
	mock *MockAuctionRepository
}

// NewMockAuctionRepository creates a new mock instance.
func NewMockAuctionRepository(ctrl *gomock.Controller) *MockAuctionRepository {
	mock := &MockAuctionRepository{ctrl: ctrl}
	mock.recorder = &MockAuctionRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuctionRepository) EXPECT() *MockAuctionRepositoryMockRecorder {
	return m.recorder
}

// DB mocks base method.
func (m *MockAuctionRepository) DB() *bun.DB {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DB")
	ret0, _ := ret[0].(*bun.DB)
	return ret0
}

// DB indicates an expected call of DB.
func (mr *MockAuctionRepositoryMockRecorder) DB() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DB", reflect.TypeOf((*MockAuctionRepository)(nil).DB))
}

// GetActive mocks base method.
func (m *MockAuctionRepository) GetActive(ctx context.Context) ([]*models.AuctionListing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActive", ctx)
	ret0, _ := ret[0].([]*models.AuctionListing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActive indicates an expected call of GetActive.
func (mr *MockAuctionRepositoryMockRecorder) GetActive(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActive", reflect.TypeOf((*MockAuctionRepository)(nil).GetActive), ctx)
}

// GetByListingCode mocks base method.
func (m *MockAuctionRepository) GetByListingCode(ctx context.Context, code string) (*models.AuctionListing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByListingCode", ctx, code)
	ret0, _ := ret[0].(*models.AuctionListing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByListingCode indicates an expected call of GetByListingCode.
func (mr *MockAuctionRepositoryMockRecorder) GetByListingCode(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByListingCode", reflect.TypeOf((*MockAuctionRepository)(nil).GetByListingCode), ctx, code)
}

// GetExpired mocks base method.
func (m *MockAuctionRepository) GetExpired(ctx context.Context, now time.Time) ([]*models.AuctionListing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetExpired", ctx, now)
	ret0, _ := ret[0].([]*models.AuctionListing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetExpired indicates an expected call of GetExpired.
func (mr *MockAuctionRepositoryMockRecorder) GetExpired(ctx, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetExpired", reflect.TypeOf((*MockAuctionRepository)(nil).GetExpired), ctx, now)
}

// GetListingBids mocks base method.
func (m *MockAuctionRepository) GetListingBids(ctx context.Context, listingID int64) ([]*models.AuctionBid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetListingBids", ctx, listingID)
	ret0, _ := ret[0].([]*models.AuctionBid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetListingBids indicates an expected call of GetListingBids.
func (mr *MockAuctionRepositoryMockRecorder) GetListingBids(ctx, listingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetListingBids", reflect.TypeOf((*MockAuctionRepository)(nil).GetListingBids), ctx, listingID)
}

// GetUserBids mocks base method.
func (m *MockAuctionRepository) GetUserBids(ctx context.Context, bidderID string) ([]*models.AuctionBid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserBids", ctx, bidderID)
	ret0, _ := ret[0].([]*models.AuctionBid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserBids indicates an expected call of GetUserBids.
func (mr *MockAuctionRepositoryMockRecorder) GetUserBids(ctx, bidderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserBids", reflect.TypeOf((*MockAuctionRepository)(nil).GetUserBids), ctx, bidderID)
}

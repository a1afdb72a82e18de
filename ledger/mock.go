package ledger

import (
	"context"

	"github.com/secstore/libsecstore-go/identity"
)

// MockService is a test double for Service.
// All function fields must be set before the corresponding method is called.
type MockService struct {
	RegisterFileFn   func(ctx context.Context, caller identity.Address, contentID, fileName, wrappedKey string, isPublic bool) (*Receipt, error)
	AddAllowedUserFn func(ctx context.Context, caller, target identity.Address) (*Receipt, error)
	PauseFn          func(ctx context.Context, caller identity.Address) (*Receipt, error)
	UnpauseFn        func(ctx context.Context, caller identity.Address) (*Receipt, error)
	FileCountFn      func(ctx context.Context, caller identity.Address) (uint64, error)
	FileFn           func(ctx context.Context, caller identity.Address, index uint64) (*FileRecord, error)
	PublicFileFn     func(ctx context.Context, owner identity.Address, index uint64) (*PublicFileView, error)
	IsAllowedFn      func(ctx context.Context, id identity.Address) (bool, error)
	OwnerFn          func(ctx context.Context) (identity.Address, error)
}

func (m *MockService) RegisterFile(ctx context.Context, caller identity.Address, contentID, fileName, wrappedKey string, isPublic bool) (*Receipt, error) {
	return m.RegisterFileFn(ctx, caller, contentID, fileName, wrappedKey, isPublic)
}
func (m *MockService) AddAllowedUser(ctx context.Context, caller, target identity.Address) (*Receipt, error) {
	return m.AddAllowedUserFn(ctx, caller, target)
}
func (m *MockService) Pause(ctx context.Context, caller identity.Address) (*Receipt, error) {
	return m.PauseFn(ctx, caller)
}
func (m *MockService) Unpause(ctx context.Context, caller identity.Address) (*Receipt, error) {
	return m.UnpauseFn(ctx, caller)
}
func (m *MockService) FileCount(ctx context.Context, caller identity.Address) (uint64, error) {
	return m.FileCountFn(ctx, caller)
}
func (m *MockService) File(ctx context.Context, caller identity.Address, index uint64) (*FileRecord, error) {
	return m.FileFn(ctx, caller, index)
}
func (m *MockService) PublicFile(ctx context.Context, owner identity.Address, index uint64) (*PublicFileView, error) {
	return m.PublicFileFn(ctx, owner, index)
}
func (m *MockService) IsAllowed(ctx context.Context, id identity.Address) (bool, error) {
	return m.IsAllowedFn(ctx, id)
}
func (m *MockService) Owner(ctx context.Context) (identity.Address, error) {
	return m.OwnerFn(ctx)
}

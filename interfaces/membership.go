package interfaces

import "context"

// Membership is the cluster membership collaborator. The core reads it and asks it to join or leave;
// it never edits the member set itself.
//
//go:generate moq -stub -out mock/membership.go -pkg mock . Membership
type Membership interface {
	Join(ctx context.Context, seeds []string) error
	Leave(ctx context.Context) error
	Members(ctx context.Context) ([]string, error)
}

// Package authz decides whether an actor may mutate a resource.
package authz

import (
	"context"
	"fmt"

	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/registry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceKind names a kind of owned resource.
type ResourceKind string

const (
	KindVideo    ResourceKind = "video"
	KindPlaylist ResourceKind = "playlist"
)

// OwnerResolver returns the owner of resource id, or common.ErrNotFound.
type OwnerResolver func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)

// Authorizer checks ownership through per-kind resolvers.
type Authorizer struct {
	resolvers *registry.Registry[OwnerResolver]
}

func NewAuthorizer() *Authorizer {
	return &Authorizer{resolvers: registry.NewRegistry[OwnerResolver]()}
}

// Register installs the resolver for kind, replacing any previous one.
func (a *Authorizer) Register(kind ResourceKind, resolver OwnerResolver) error {
	if resolver == nil {
		return common.ErrRequiredField.WithMessage("resolver is required")
	}
	_, err := a.resolvers.Register(string(kind), resolver)
	return err
}

// Authorize returns nil when actor owns the resource, ErrNotFound when it
// does not exist and ErrForbidden otherwise.
func (a *Authorizer) Authorize(ctx context.Context, actor primitive.ObjectID, kind ResourceKind, id primitive.ObjectID) error {
	owns, err := a.IsOwner(ctx, actor, kind, id)
	if err != nil {
		return err
	}
	if !owns {
		return common.ErrForbidden.WithMessage(fmt.Sprintf("Only the owner can modify this %s", kind))
	}
	return nil
}

// IsOwner is the boolean form of Authorize for read-side visibility.
func (a *Authorizer) IsOwner(ctx context.Context, actor primitive.ObjectID, kind ResourceKind, id primitive.ObjectID) (bool, error) {
	resolver, ok := a.resolvers.Get(string(kind))
	if !ok {
		return false, common.ErrInternal.WithDetails(fmt.Sprintf("no owner resolver for %q", kind))
	}
	owner, err := resolver(ctx, id)
	if err != nil {
		return false, err
	}
	return !actor.IsZero() && owner == actor, nil
}

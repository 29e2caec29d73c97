package services

import "intranet/internal/models"

// Authorization policy. Pure decisions over (actor, resource owner), no I/O.
// Every mutating service path goes through one of these so the rules live in
// one place: anonymous actors are denied, admins override ownership except
// for user deletion, everyone else must own the resource.

// CanAdministrate reports whether the actor may use the admin surface.
func CanAdministrate(actor *models.Session) bool {
	return actor != nil && actor.IsAdmin()
}

// CanMutateOwned allows only the owner, with no admin override. Used where
// the design keeps mutation author-only (blog post edits).
func CanMutateOwned(actor *models.Session, ownerID string) bool {
	return actor != nil && actor.UserID == ownerID
}

// CanMutateOwnedOrAdmin allows the owner or any admin. Used for deletions
// of posts, comments and files.
func CanMutateOwnedOrAdmin(actor *models.Session, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.UserID == ownerID
}

// CanDeleteUser allows admins to delete users, except users who are
// themselves ADMIN. The immunity holds regardless of who asks.
func CanDeleteUser(actor *models.Session, target *models.User) bool {
	return CanAdministrate(actor) && target.Role != models.RoleAdmin
}

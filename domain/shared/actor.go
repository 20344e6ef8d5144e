package shared

// ActorKind discriminates the parties that can act on or receive things in the
// storefront. Polymorphic references (notification recipients, status history
// authors) are stored as an explicit {Kind, ID} pair and dispatched on Kind.
type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorAdmin ActorKind = "admin"
	ActorGuest ActorKind = "guest"
)

// Actor is a tagged reference to a user, admin or guest.
// Guests have no stored identity; their ID is the capture email.
type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   string    `json:"id"`
}

// UserActor builds a reference to a registered customer
func UserActor(id string) Actor { return Actor{Kind: ActorUser, ID: id} }

// AdminActor builds a reference to an administrator
func AdminActor(id string) Actor { return Actor{Kind: ActorAdmin, ID: id} }

// GuestActor builds a reference to a guest identified by email
func GuestActor(email string) Actor { return Actor{Kind: ActorGuest, ID: email} }

// IsZero reports whether the actor reference is unset
func (a Actor) IsZero() bool { return a.Kind == "" && a.ID == "" }

// Valid reports whether Kind is one of the known kinds
func (a Actor) Valid() bool {
	switch a.Kind {
	case ActorUser, ActorAdmin, ActorGuest:
		return a.ID != ""
	}
	return false
}

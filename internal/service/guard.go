package service

import "github.com/MKhiriev/rent-pe-easy/models"

// CanMutate reports whether principal may update or delete a resource
// owned by ownerUsername. Ownership is the only criterion: roles grant
// nothing here.
func CanMutate(principal models.Principal, ownerUsername string) bool {
	return principal.Username != "" && principal.Username == ownerUsername
}

// authorizeOwner returns ErrNotPropertyOwner unless principal owns p.
func authorizeOwner(principal models.Principal, p models.Property) error {
	if !CanMutate(principal, p.OwnerUsername) {
		return ErrNotPropertyOwner
	}
	return nil
}

// Package domain contains the business entities and rules for accounts.
// This is the innermost layer - it has no dependencies on outer layers.
package domain

import (
	"time"

	shareddomain "github.com/anthol-dao/anthol-common/modules/shared/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// Account is the aggregate root for the account bounded context.
// The handle is the account's identity: lookups, uniqueness and storage keys
// all go through its case-insensitive comparison key, while the handle itself
// keeps the case the owner registered with.
type Account struct {
	shareddomain.AggregateRoot

	handle    ident.ActorID
	name      Name
	birthName BirthName
	mail      MailAddress
	image     Image
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewAccount creates a new Account with validated inputs.
// Factory function enforces all invariants at creation time.
// Adds AccountRegisteredEvent to be dispatched after persistence.
func NewAccount(handle ident.ActorID, name Name, mail MailAddress) *Account {
	a := &Account{
		handle:    handle,
		name:      name,
		mail:      mail,
		image:     NoImage(),
		status:    StatusActive,
		createdAt: time.Now().UTC(),
		updatedAt: time.Now().UTC(),
	}
	a.AddDomainEvent(NewAccountRegisteredEvent(a))
	return a
}

// Reconstitute recreates an Account from persistence.
// Used by repositories to rebuild aggregates from stored data.
func Reconstitute(
	handle ident.ActorID,
	name Name,
	birthName BirthName,
	mail MailAddress,
	image Image,
	status Status,
	createdAt, updatedAt time.Time,
) *Account {
	return &Account{
		handle:    handle,
		name:      name,
		birthName: birthName,
		mail:      mail,
		image:     image,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters - expose state without allowing direct mutation

func (a *Account) Handle() ident.ActorID { return a.handle }
func (a *Account) Name() Name            { return a.name }
func (a *Account) BirthName() BirthName  { return a.birthName }
func (a *Account) Mail() MailAddress     { return a.mail }
func (a *Account) Image() Image          { return a.image }
func (a *Account) Status() Status        { return a.status }
func (a *Account) CreatedAt() time.Time  { return a.createdAt }
func (a *Account) UpdatedAt() time.Time  { return a.updatedAt }

// Business methods - encapsulate business rules

// SetProfile replaces the account's profile information.
// Adds AccountUpdatedEvent to be dispatched after persistence.
func (a *Account) SetProfile(name Name, birthName BirthName, mail MailAddress, image Image) error {
	if a.status == StatusDeleted {
		return ErrAccountDeleted
	}
	a.name = name
	a.birthName = birthName
	a.mail = mail
	a.image = image
	a.updatedAt = time.Now().UTC()
	a.AddDomainEvent(NewAccountUpdatedEvent(a))
	return nil
}

// Deactivate deactivates the account.
func (a *Account) Deactivate() error {
	if a.status == StatusDeleted {
		return ErrAccountDeleted
	}
	a.status = StatusInactive
	a.updatedAt = time.Now().UTC()
	return nil
}

// Activate activates the account.
func (a *Account) Activate() error {
	if a.status == StatusDeleted {
		return ErrAccountDeleted
	}
	a.status = StatusActive
	a.updatedAt = time.Now().UTC()
	return nil
}

// Delete marks the account as deleted (soft delete).
// Adds AccountDeletedEvent to be dispatched after persistence.
func (a *Account) Delete() error {
	a.status = StatusDeleted
	a.updatedAt = time.Now().UTC()
	a.AddDomainEvent(NewAccountDeletedEvent(a.handle))
	return nil
}

// IsActive returns true if the account is active.
func (a *Account) IsActive() bool {
	return a.status == StatusActive
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

// Principal is the authenticated identity of a caller. Two principals are the
// same only if their bytes are identical.
type Principal string

// accessControl answers role questions. It never mutates anything.
type accessControl struct {
	admin  Principal
	voters *voterRegistry
}

func (a accessControl) requireAdministrator(caller Principal) error {
	if caller == "" || caller != a.admin {
		return ErrUnauthorized
	}
	return nil
}

func (a accessControl) requireRegisteredVoter(caller Principal) error {
	if !a.voters.get(caller).Registered {
		return ErrNotAVoter
	}
	return nil
}

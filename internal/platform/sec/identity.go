// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the authenticated caller attached to a request.
//
// It is the public projection of a user record: credential fields never
// reach this type, so it is always safe to log or return to clients.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

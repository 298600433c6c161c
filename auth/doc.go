// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens, admin key checks, and IP hashing.

# Session Tokens

Session tokens use HMAC-SHA256 over the session ID:

	token := auth.GenerateSessionToken(sessionID, salt)
	err := auth.ValidateSessionToken(sessionID, token, salt)

The token is URL-safe base64 encoded without padding. Since it's
deterministic, the session store never keeps it; knowing a session ID alone
is not enough to drive someone else's quiz.

# Admin Key

The lead listing API compares the X-Admin-Key header against the configured
ADMIN_KEY in constant time:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

# IP Hashing

Leads record a privacy-preserving hash of the client address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth

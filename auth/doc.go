// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier generation and password hashing.

# ID Generation

Every row gets a random UUID:

	id := auth.NewID()

# Passwords

Passwords are stored as bcrypt hashes, never as plaintext:

	hash, err := auth.HashPassword("correct horse")
	err = auth.CheckPassword(hash, "correct horse") // nil
	err = auth.CheckPassword(hash, "wrong")         // ErrPasswordMismatch

bcrypt only reads the first 72 bytes of its input, so longer passwords are
rejected with ErrPasswordTooLong instead of being silently truncated.

There are no sessions: callers pass their user id with each request.
*/
package auth

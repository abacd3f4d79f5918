// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued by the storefront.
// Besides the registered claims it carries the account role so that admin
// routes can be authorized without a database round-trip.
type Claims struct {
	jwt.RegisteredClaims

	Role Role `json:"role"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token ready to be
// transmitted in the Authorization header. UserID and Role are parsed copies
// of the "sub" and "role" claims.
type Token struct {
	*jwt.Token `json:"-"`

	SignedString string `json:"-"`

	UserID int64 `json:"-"`
	Role   Role  `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim.
func (t *Token) GetUserID() (int64, error) {
	if t.Token == nil || t.Token.Claims == nil {
		return 0, fmt.Errorf("error extracting UserID from token: no claims")
	}

	userIDString, err := t.Token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

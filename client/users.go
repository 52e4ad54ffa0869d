package client

import (
	"context"
	"net/http"

	"finaily/outcome"
	"finaily/types"
)

// Me fetches the signed-in user's profile
func (c *Client) Me(ctx context.Context, credential string) outcome.Outcome[types.UserProfile] {
	if credential == "" {
		return outcome.Invalid[types.UserProfile]("sign-in required")
	}
	return Do[types.UserProfile](ctx, c, Request{Path: "/users/me", Credential: credential})
}

// UpdateMe patches the signed-in user's profile
func (c *Client) UpdateMe(ctx context.Context, credential string, update types.ProfileUpdate) outcome.Outcome[types.UserProfile] {
	if credential == "" {
		return outcome.Invalid[types.UserProfile]("sign-in required")
	}
	if update.PreferredLanguage != nil && !update.PreferredLanguage.Valid() {
		return outcome.Invalid[types.UserProfile]("unsupported language %q", *update.PreferredLanguage)
	}
	return Do[types.UserProfile](ctx, c, Request{
		Method:     http.MethodPatch,
		Path:       "/users/me",
		Body:       update,
		Credential: credential,
	})
}

// Package common contains shared constants and sentinel errors used across
// ganfan components.
package common

// SessionTokenKey is the metadata key holding the current session token
// in the local store.
const SessionTokenKey = "token"

// DefaultChefNickname is given to the bootstrap chef when onboarding
// finishes without a nickname.
const DefaultChefNickname = "厨子"

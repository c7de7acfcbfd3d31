package service

import (
	"fmt"
	"math/rand"
)

// avatarStyles are the dicebear collections new accounts draw from.
var avatarStyles = []string{
	"adventurer",
	"avataaars",
	"bottts",
	"identicon",
	"pixel-art",
	"thumbs",
}

// AvatarURL builds a default avatar for a new account: a random style seeded
// with the username. The random source is injected so callers can pin it.
func AvatarURL(username string, r *rand.Rand) string {
	style := avatarStyles[r.Intn(len(avatarStyles))]
	return fmt.Sprintf("https://api.dicebear.com/7.x/%s/svg?seed=%s", style, username)
}

package model

import "strings"

// Supported platforms and actions. Service codes are the upstream
// provider's identifiers, indexed platform -> [followers, likes, views].
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTikTok    = "tiktok"

	ActionFollowers = "followers"
	ActionLikes     = "likes"
	ActionViews     = "views"
)

var serviceCodes = map[string][3]string{
	PlatformInstagram: {"5712", "4365", "556"},
	PlatformFacebook:  {"1636", "1101", "9598"},
	PlatformTikTok:    {"8521", "2079", "6990"},
}

var actionIndex = map[string]int{
	ActionFollowers: 0,
	ActionLikes:     1,
	ActionViews:     2,
}

var profilePrefix = map[string]string{
	PlatformInstagram: "https://www.instagram.com/",
	PlatformTikTok:    "https://www.tiktok.com/@",
}

// ServiceCode resolves the upstream service code for a platform/action
// pair. The second return is false for unknown platforms or actions.
func ServiceCode(platform, action string) (string, bool) {
	codes, ok := serviceCodes[strings.ToLower(platform)]
	if !ok {
		return "", false
	}
	idx, ok := actionIndex[strings.ToLower(action)]
	if !ok {
		return "", false
	}
	return codes[idx], true
}

// ProfileLink builds the target URL for a bare username. Platforms
// without a known profile prefix pass the value through untouched.
func ProfileLink(platform, username string) string {
	prefix, ok := profilePrefix[strings.ToLower(platform)]
	if !ok {
		return username
	}
	return prefix + strings.TrimSpace(username)
}

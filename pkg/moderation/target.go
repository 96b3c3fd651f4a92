package moderation

import "strings"

// ParseUserRef turns a mention or raw ID into a target reference. Raw
// numeric IDs are kept so the ban path can fall back to the global user
// directory for users outside the guild.
func ParseUserRef(input string) TargetRef {
	id := strings.TrimSpace(input)
	id = strings.TrimPrefix(id, "<@!")
	id = strings.TrimPrefix(id, "<@")
	id = strings.TrimSuffix(id, ">")
	if id == "" {
		return TargetRef{}
	}
	return TargetRef{MemberID: id, RawID: id}
}

// ParseBanListRef parses an unban target: a numeric ID, or the legacy
// name#discriminator form.
func ParseBanListRef(input string) TargetRef {
	input = strings.TrimSpace(input)
	if input == "" {
		return TargetRef{}
	}
	if isDigits(input) {
		return TargetRef{RawID: input}
	}
	if name, disc, ok := strings.Cut(input, "#"); ok && name != "" && disc != "" {
		return TargetRef{Name: name, Discriminator: disc}
	}
	return TargetRef{}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Package auth evaluates role-based permissions over Discord role-id sets.
// Checks are pure functions: the caller supplies the actor's role ids and the
// ids that grant access.
package auth

// HasAnyRole reports whether memberRoles contains at least one of the
// required role ids. Empty required ids are ignored so unconfigured roles
// never grant access.
func HasAnyRole(memberRoles []string, required ...string) bool {
	for _, want := range required {
		if want == "" {
			continue
		}
		for _, have := range memberRoles {
			if have == want {
				return true
			}
		}
	}
	return false
}

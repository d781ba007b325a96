package auth

// Validator checks credentials against the fixed mock user set. The set is
// constant for the process lifetime; there is no hashing because the server
// only simulates authentication.
type Validator struct {
	users map[string]string
}

func NewValidator(users map[string]string) *Validator {
	cp := make(map[string]string, len(users))
	for u, p := range users {
		cp[u] = p
	}
	return &Validator{users: cp}
}

func (v *Validator) Validate(username, password string) bool {
	if v == nil || username == "" {
		return false
	}
	expected, ok := v.users[username]
	return ok && expected == password
}

package core

// PasswordHasher turns a submitted password into its stored form and checks
// a submitted password against a stored one
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing time for brute-force resistance; 12 keeps a
// login under ~300ms on current hardware.
const bcryptCost = 12

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

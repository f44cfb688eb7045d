package enums

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleMerchant Role = "merchant"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

var validRoles = []Role{
	RoleMerchant,
	RoleSupplier,
	RoleAdmin,
}

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// SelfRegistrable reports whether accounts of this role can sign up without an admin.
func (r Role) SelfRegistrable() bool {
	return r == RoleMerchant || r == RoleSupplier
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

package password

import "github.com/Alijeyrad/clinic_console/config"

// FromCentralConfig builds Argon2id parameters for the mock API's user
// store. Zero values fall back to DefaultParams.
func FromCentralConfig(c config.MockAPIConfig) *Params {
	p := DefaultParams()
	if c.PasswordMemoryKiB > 0 {
		p.Memory = c.PasswordMemoryKiB
	}
	if c.PasswordIterations > 0 {
		p.Iterations = c.PasswordIterations
	}
	return p
}

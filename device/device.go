package device

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/naniedobe1/PoleBrothers/errs"
)

// EnsureID returns the stable per-device identifier persisted at path,
// generating and storing a fresh one on first use. The identifier is the
// device's whole identity; there is no server-side account behind it.
func EnsureID(path string) (string, error) {
	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", errs.LocalIO("persist device id", err)
	}
	return id, nil
}

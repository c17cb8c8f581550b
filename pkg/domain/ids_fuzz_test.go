package domain

import (
	"testing"

	"github.com/google/uuid"
)

// FuzzParseDemandeID checks parsing never panics and never yields the nil UUID.
func FuzzParseDemandeID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("DEM-1718000000000")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseDemandeID(input)
		if err != nil {
			if uuid.UUID(id) != uuid.Nil {
				t.Fatalf("error returned with non-nil id %s", id)
			}
			return
		}
		if uuid.UUID(id) == uuid.Nil {
			t.Fatalf("nil id accepted for input %q", input)
		}
	})
}

package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "cdp/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so a DemandeID can never be passed
// where an EntrepriseID is expected.
type (
	UserID        uuid.UUID
	DemandeID     uuid.UUID
	EntrepriseID  uuid.UUID
	MissionID     uuid.UUID
	RecepisseID   uuid.UUID
	CourrierID    uuid.UUID
	DeplacementID uuid.UUID
)

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id DemandeID) String() string     { return uuid.UUID(id).String() }
func (id EntrepriseID) String() string  { return uuid.UUID(id).String() }
func (id MissionID) String() string     { return uuid.UUID(id).String() }
func (id RecepisseID) String() string   { return uuid.UUID(id).String() }
func (id CourrierID) String() string    { return uuid.UUID(id).String() }
func (id DeplacementID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id DemandeID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EntrepriseID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id MissionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id DemandeID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id EntrepriseID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id MissionID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id RecepisseID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id CourrierID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id DeplacementID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error       { return unmarshalID((*uuid.UUID)(id), b) }
func (id *DemandeID) UnmarshalText(b []byte) error    { return unmarshalID((*uuid.UUID)(id), b) }
func (id *EntrepriseID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *MissionID) UnmarshalText(b []byte) error    { return unmarshalID((*uuid.UUID)(id), b) }
func (id *RecepisseID) UnmarshalText(b []byte) error  { return unmarshalID((*uuid.UUID)(id), b) }
func (id *CourrierID) UnmarshalText(b []byte) error   { return unmarshalID((*uuid.UUID)(id), b) }
func (id *DeplacementID) UnmarshalText(b []byte) error {
	return unmarshalID((*uuid.UUID)(id), b)
}

func unmarshalID(dst *uuid.UUID, b []byte) error {
	parsed, err := parseUUID(string(b), "id")
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

// parseUUID enforces the identifier invariant at trust boundaries:
// non-empty, well-formed and not the nil UUID.
func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return parsed, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

func ParseDemandeID(s string) (DemandeID, error) {
	u, err := parseUUID(s, "demande id")
	return DemandeID(u), err
}

func ParseEntrepriseID(s string) (EntrepriseID, error) {
	u, err := parseUUID(s, "entreprise id")
	return EntrepriseID(u), err
}

func ParseMissionID(s string) (MissionID, error) {
	u, err := parseUUID(s, "mission id")
	return MissionID(u), err
}

func ParseRecepisseID(s string) (RecepisseID, error) {
	u, err := parseUUID(s, "recepisse id")
	return RecepisseID(u), err
}

package sessions

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// who authored a chat message
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// normalizes a role from the client vocabulary; "assistant" is accepted as an alias of "ai"
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return RoleUser, nil
	case "ai", "assistant":
		return RoleAI, nil
	default:
		return "", fmt.Errorf("invalid chat role %q", raw)
	}
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("chat role must be a string: %w", err)
	}

	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}

// a single chat turn in a session transcript
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// the generated component source
type Code struct {
	JSX string `json:"jsx"`
	CSS string `json:"css"`
}

// reports whether no generation has been saved yet
func (c Code) IsEmpty() bool {
	return c.JSX == "" && c.CSS == ""
}

// a persisted chat + generated code workspace owned by one user
type Session struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Chat      Transcript `json:"chat"`
	Code      Code       `json:"code"`
	UIState   UIState    `json:"ui_state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ordered chat messages stored as a jsonb array
type Transcript []Message

func (t Transcript) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}

	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	return string(encoded), nil
}

func (t *Transcript) Scan(value any) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}

	if data == nil {
		*t = Transcript{}
		return nil
	}

	return json.Unmarshal(data, t)
}

// stamps messages that arrived without a timestamp
func (t Transcript) StampMissing(now time.Time) {
	for i := range t {
		if t[i].Timestamp.IsZero() {
			t[i].Timestamp = now
		}
	}
}

// opaque client-side state, passed through unmodified
type UIState map[string]any

func (u UIState) Value() (driver.Value, error) {
	if u == nil {
		return "{}", nil
	}

	encoded, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}

	return string(encoded), nil
}

func (u *UIState) Scan(value any) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}

	if data == nil {
		*u = UIState{}
		return nil
	}

	return json.Unmarshal(data, u)
}

// numbers decode as json.Number so large integers round-trip exactly
func (u *UIState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*u = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("ui_state must be a JSON object: %w", err)
	}

	*u = raw
	return nil
}

// jsonb arrives as []byte in extended protocol and as string in simple protocol
func jsonBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// partial update; nil fields are left untouched
type UpdateSessionRequest struct {
	Chat    Transcript `json:"chat,omitempty" binding:"omitempty,max=500"`
	Code    *Code      `json:"code,omitempty"`
	UIState UIState    `json:"ui_state,omitempty"`
}

// reports whether the request changes nothing
func (r UpdateSessionRequest) IsEmpty() bool {
	return r.Chat == nil && r.Code == nil && r.UIState == nil
}

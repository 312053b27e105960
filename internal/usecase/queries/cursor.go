package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vehicle-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

// Keyset is the (created_at, id) position after which a page starts.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (*Keyset, error) {
	if cursor == "" {
		return nil, errs.New("cursor cannot be empty")
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errs.Wrap(err, "invalid cursor encoding")
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return nil, errs.New("unsupported cursor version")
	}

	parts := strings.SplitN(payload, "-", 2)
	if len(parts) != 2 {
		return nil, errs.New("invalid cursor format: expected '<micros>-<uuid>'")
	}

	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, errs.Wrap(err, "invalid timestamp")
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, errs.Wrap(err, "invalid UUID")
	}

	return &Keyset{CreatedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func decodeCursor(cursor *Cursor) (*Keyset, error) {
	if cursor == nil || cursor.After == "" {
		return nil, nil
	}
	ks, err := DecodeAfterCursor(cursor.After)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return ks, nil
}

// page trims the extra row fetched to detect a next page.
func page[T any](rows []T, limit int, key func(T) (time.Time, uuid.UUID)) ([]T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	t, id := key(rows[limit-1])
	return rows[:limit], &Cursor{After: EncodeAfterCursor(t, id)}
}

package vault

import (
	"encoding/json"
	"time"
)

// Meta is the optional per-vault metadata record: creation and last-write
// timestamps, kept separately from the recipients document so reading it
// never requires decoding key material.
type Meta struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e Engine) loadMeta() (Meta, bool, error) {
	data, ok, err := e.Backend.LoadMeta()
	if err != nil || !ok {
		return Meta{}, ok, err
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return Meta{}, false, err
	}
	return m, true, nil
}

// touchMeta records now as UpdatedAt, setting CreatedAt on first write.
func (e Engine) touchMeta(now time.Time) error {
	existing, _, err := e.loadMeta()
	if err != nil {
		return err
	}
	if existing.CreatedAt.IsZero() {
		existing.CreatedAt = now
	}
	existing.UpdatedAt = now

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}
	return e.Backend.SaveMeta(data)
}

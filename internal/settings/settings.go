// Package settings stores the local display, notification and privacy
// preferences.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/optilearn/schedulease/internal/store"
)

// Key is the store key holding the preferences document.
const Key = "settings"

type Preferences struct {
	DarkMode           bool `json:"dark_mode"`
	EmailNotifications bool `json:"email_notifications"`
	PublicProfile      bool `json:"public_profile"`
	ShareProgress      bool `json:"share_progress"`
}

func Defaults() Preferences {
	return Preferences{EmailNotifications: true}
}

// Toggle identifies one switch on the settings screen.
type Toggle int

const (
	ToggleDarkMode Toggle = iota
	ToggleEmailNotifications
	TogglePublicProfile
	ToggleShareProgress
)

// Toggles lists every switch in display order.
func Toggles() []Toggle {
	return []Toggle{ToggleDarkMode, ToggleEmailNotifications, TogglePublicProfile, ToggleShareProgress}
}

func (t Toggle) Label() string {
	switch t {
	case ToggleDarkMode:
		return "Dark Mode"
	case ToggleEmailNotifications:
		return "Email Notifications"
	case TogglePublicProfile:
		return "Public Profile"
	case ToggleShareProgress:
		return "Share Progress with Advisors"
	}
	return ""
}

func (t Toggle) Section() string {
	switch t {
	case ToggleDarkMode:
		return "Appearance"
	case ToggleEmailNotifications:
		return "Notifications"
	}
	return "Privacy"
}

func (p *Preferences) field(t Toggle) *bool {
	switch t {
	case ToggleDarkMode:
		return &p.DarkMode
	case ToggleEmailNotifications:
		return &p.EmailNotifications
	case TogglePublicProfile:
		return &p.PublicProfile
	case ToggleShareProgress:
		return &p.ShareProgress
	}
	return nil
}

// Get reports the value of t.
func (p Preferences) Get(t Toggle) bool {
	if f := p.field(t); f != nil {
		return *f
	}
	return false
}

// Flip inverts t and returns the new value.
func (p *Preferences) Flip(t Toggle) bool {
	f := p.field(t)
	if f == nil {
		return false
	}
	*f = !*f
	return *f
}

type Repo struct {
	kv store.KVRepo
}

func NewRepo(kv store.KVRepo) *Repo {
	return &Repo{kv: kv}
}

// Load returns the stored preferences, or Defaults when none are stored.
func (r *Repo) Load(ctx context.Context) (Preferences, error) {
	data, err := r.kv.Get(ctx, Key)
	if errors.Is(err, store.ErrNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("load settings: %w", err)
	}

	p := Defaults()
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("decode settings: %w", err)
	}
	return p, nil
}

func (r *Repo) Save(ctx context.Context, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

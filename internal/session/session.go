// Package session holds the signed-in student's identity. A Session is
// created on login or registration, persisted in the local store under a
// single key, and destroyed on logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/store"
)

// Key is the store key holding the persisted session.
const Key = "userData"

// ErrNoSession is returned when nobody is signed in.
var ErrNoSession = errors.New("not logged in")

// Session is the signed-in student's profile.
type Session struct {
	NUID                  string
	Name                  string
	ProgrammingExperience map[string]float64
	MathExperience        map[string]float64

	// Extra holds the remaining profile fields returned by the backend.
	Extra map[string]json.RawMessage
}

// FromProfile builds a Session from a successful login.
func FromProfile(nuid, name string, p *api.UserProfile) *Session {
	s := &Session{
		NUID:                  nuid,
		Name:                  name,
		ProgrammingExperience: map[string]float64{},
		MathExperience:        map[string]float64{},
		Extra:                 map[string]json.RawMessage{},
	}
	if p == nil {
		return s
	}
	maps.Copy(s.ProgrammingExperience, p.ProgrammingExperience)
	maps.Copy(s.MathExperience, p.MathExperience)
	if len(p.Raw) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(p.Raw, &fields); err == nil {
			for k, v := range fields {
				if !isKnownField(k) {
					s.Extra[k] = v
				}
			}
		}
	}
	return s
}

// FromRegistration builds a Session from a successful registration.
func FromRegistration(req api.RegisterRequest) *Session {
	s := &Session{
		NUID:                  req.NUID,
		Name:                  req.Name,
		ProgrammingExperience: make(map[string]float64, len(req.ProgrammingExperience)),
		MathExperience:        make(map[string]float64, len(req.MathExperience)),
		Extra:                 map[string]json.RawMessage{},
	}
	for k, v := range req.ProgrammingExperience {
		s.ProgrammingExperience[k] = float64(v)
	}
	for k, v := range req.MathExperience {
		s.MathExperience[k] = float64(v)
	}
	for k, v := range map[string]any{
		"interests":         req.Interests,
		"completed_courses": req.CompletedCourses,
		"core_subjects":     req.CoreSubjects,
	} {
		if raw, err := json.Marshal(v); err == nil {
			s.Extra[k] = raw
		}
	}
	return s
}

func isKnownField(k string) bool {
	switch k {
	case "nuid", "fullName", "programming_experience", "math_experience":
		return true
	}
	return false
}

// Interests returns the stored interest list, if any.
func (s *Session) Interests() []string {
	var out []string
	if raw, ok := s.Extra["interests"]; ok {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

// CoreSubjects returns the stored core requirement codes, if any.
func (s *Session) CoreSubjects() []string {
	var out []string
	if raw, ok := s.Extra["core_subjects"]; ok {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

// Initials returns up to two upper-case initials of Name.
func (s *Session) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(s.Name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[:1])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// MarshalJSON writes the flat document stored under Key: the backend's
// profile fields with nuid, fullName and the two skill maps on top.
func (s *Session) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.Extra)+4)
	for k, v := range s.Extra {
		doc[k] = v
	}
	doc["nuid"] = s.NUID
	doc["fullName"] = s.Name
	doc["programming_experience"] = orEmpty(s.ProgrammingExperience)
	doc["math_experience"] = orEmpty(s.MathExperience)
	return json.Marshal(doc)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*s = Session{Extra: map[string]json.RawMessage{}}
	for k, v := range doc {
		var err error
		switch k {
		case "nuid":
			err = json.Unmarshal(v, &s.NUID)
		case "fullName":
			err = json.Unmarshal(v, &s.Name)
		case "programming_experience":
			err = json.Unmarshal(v, &s.ProgrammingExperience)
		case "math_experience":
			err = json.Unmarshal(v, &s.MathExperience)
		default:
			s.Extra[k] = v
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", k, err)
		}
	}
	if s.ProgrammingExperience == nil {
		s.ProgrammingExperience = map[string]float64{}
	}
	if s.MathExperience == nil {
		s.MathExperience = map[string]float64{}
	}
	return nil
}

func orEmpty(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

// Manager creates, loads and destroys the persisted session.
type Manager struct {
	kv store.KVRepo
}

func NewManager(kv store.KVRepo) *Manager {
	return &Manager{kv: kv}
}

// Save persists s, replacing any previous session.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil || strings.TrimSpace(s.NUID) == "" {
		return fmt.Errorf("save session: missing NUID")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Current returns the persisted session or ErrNoSession.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	data, err := m.kv.Get(ctx, Key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.NUID == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Logout removes the persisted session.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

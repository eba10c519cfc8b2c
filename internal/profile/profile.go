// Package profile stores the candidate profile per account and edits it.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/store"
	"github.com/rs/zerolog"
)

// Remote mirrors the profile to the backend. *api.Client satisfies it.
type Remote interface {
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
}

type Book struct {
	store  store.Store
	logger zerolog.Logger
}

func NewBook(s store.Store, logger zerolog.Logger) *Book {
	return &Book{store: s, logger: logger}
}

// Load returns the profile saved for userID, or the default profile when none
// is stored or the stored blob does not decode.
func (b *Book) Load(ctx context.Context, userID models.ID) (models.Profile, error) {
	raw, err := b.store.Get(ctx, store.ProfileKey(userID.String()))
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultProfile(), nil
	}
	if err != nil {
		return models.Profile{}, err
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		b.logger.Debug().Err(err).Str("user_id", userID.String()).Msg("stored profile unreadable, using default")
		return models.DefaultProfile(), nil
	}
	return p, nil
}

func (b *Book) Save(ctx context.Context, userID models.ID, p models.Profile) error {
	p.Skills = CleanSkills(p.Skills)
	return store.SetJSON(ctx, b.store, store.ProfileKey(userID.String()), p)
}

// Push sends p to the backend and stores what it echoes back. An empty reply
// keeps p.
func (b *Book) Push(ctx context.Context, remote Remote, userID models.ID, p models.Profile) (models.Profile, error) {
	updated, err := remote.UpdateProfile(ctx, p)
	if err != nil {
		return models.Profile{}, err
	}
	if updated.Skills == nil && updated.Headline == "" && updated.About == "" {
		updated = p
	}
	if err := b.Save(ctx, userID, updated); err != nil {
		return models.Profile{}, err
	}
	return updated, nil
}

// Pull replaces the stored profile with the backend copy.
func (b *Book) Pull(ctx context.Context, remote Remote, userID models.ID) (models.Profile, error) {
	p, err := remote.Profile(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	if err := b.Save(ctx, userID, p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Fields lists the names accepted by Set.
func Fields() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var setters = map[string]func(*models.Profile, string){
	"headline":  func(p *models.Profile, v string) { p.Headline = v },
	"location":  func(p *models.Profile, v string) { p.Location = v },
	"about":     func(p *models.Profile, v string) { p.About = v },
	"portfolio": func(p *models.Profile, v string) { p.Links.Portfolio = v },
	"github":    func(p *models.Profile, v string) { p.Links.GitHub = v },
	"linkedin":  func(p *models.Profile, v string) { p.Links.LinkedIn = v },
	"skills":    func(p *models.Profile, v string) { p.Skills = CleanSkills(strings.Split(v, ",")) },
}

// Set assigns value to the named field.
func Set(p *models.Profile, field, value string) error {
	setter, ok := setters[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return fmt.Errorf("unknown profile field %q (use %s)", field, strings.Join(Fields(), ", "))
	}
	setter(p, strings.TrimSpace(value))
	return nil
}

// AddSkill appends skill unless it is blank or already listed.
func AddSkill(p *models.Profile, skill string) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return
	}
	for _, existing := range p.Skills {
		if strings.EqualFold(existing, skill) {
			return
		}
	}
	p.Skills = append(p.Skills, skill)
}

// RemoveSkill drops every skill equal to skill, ignoring case.
func RemoveSkill(p *models.Profile, skill string) bool {
	skill = strings.TrimSpace(skill)
	out := p.Skills[:0]
	removed := false
	for _, existing := range p.Skills {
		if strings.EqualFold(existing, skill) {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	p.Skills = out
	return removed
}

// CleanSkills trims skills and drops blanks.
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

package postjob

import (
	"context"

	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/rs/zerolog"
)

// Poster creates a posting on the backend. *api.Client satisfies it.
type Poster interface {
	PostJob(ctx context.Context, body api.PostJobRequest) (models.Job, error)
}

// Roles tells whether the current account is a company. *session.Session satisfies it.
type Roles interface {
	IsCompany() bool
}

// Appender receives the created job so it shows without a reload.
// *listing.Controller satisfies it.
type Appender interface {
	Append(job models.Job)
}

type Submitter struct {
	poster  Poster
	roles   Roles
	listing Appender
	logger  zerolog.Logger
}

// NewSubmitter wires a submitter. listing may be nil.
func NewSubmitter(poster Poster, roles Roles, listing Appender, logger zerolog.Logger) *Submitter {
	return &Submitter{poster: poster, roles: roles, listing: listing, logger: logger}
}

// Submit posts form and resets it on success. On any failure the form is
// left as it was and nothing is sent when the role or the fields are invalid.
func (s *Submitter) Submit(ctx context.Context, form *Form) (models.Job, error) {
	if s.roles == nil || !s.roles.IsCompany() {
		return models.Job{}, ErrNotCompany
	}
	if err := form.Validate(); err != nil {
		return models.Job{}, err
	}

	job, err := s.poster.PostJob(ctx, form.Payload())
	if err != nil {
		return models.Job{}, err
	}
	s.logger.Info().Str("job_id", job.ID.String()).Str("title", job.Title).Msg("job posted")

	if s.listing != nil {
		s.listing.Append(job)
	}
	form.Reset()
	return job, nil
}

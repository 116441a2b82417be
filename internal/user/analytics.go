package user

import (
	"context"
	"errors"

	"portforyou/internal/apperrors"
	"portforyou/internal/database"
	"portforyou/internal/dotpath"
	"portforyou/internal/models"
)

// VisitInput is the client-reported part of a visit.
type VisitInput struct {
	IP      string        `json:"ip"`
	Country string        `json:"country"`
	Browser string        `json:"browser"`
	Device  models.Device `json:"device"`
}

// RecordVisit appends a visit to the template's analytics and bumps its
// counter in one atomic update.
func (s *Service) RecordVisit(ctx context.Context, userID string, variant models.Variant, in VisitInput) (bool, error) {
	visitor := models.Visitor{
		IP:        in.IP,
		Country:   in.Country,
		Browser:   in.Browser,
		Device:    in.Device,
		VisitDate: s.now(),
	}
	if err := visitor.Validate(); err != nil {
		return false, apperrors.Validation(err.Error())
	}

	field := variant.Field()
	analytics := dotpath.Join(field, "analytics")
	_, err := s.store.UpdateByID(ctx, userID, database.Update{
		Push:    map[string]any{dotpath.Join(analytics, "visitors"): visitor},
		Inc:     map[string]int{dotpath.Join(analytics, "totalVisits"): 1},
		Require: []string{field},
	}, database.UpdateOptions{})
	if errors.Is(err, database.ErrNotFound) {
		return false, s.missingTarget(ctx, userID)
	}
	if err != nil {
		return false, translate(err, "record visit")
	}
	return true, nil
}

// missingTarget tells a missing user apart from a missing template after a
// conditional update matched nothing.
func (s *Service) missingTarget(ctx context.Context, userID string) error {
	_, err := s.store.FindByID(ctx, userID)
	switch {
	case err == nil:
		return apperrors.NotFound("Template")
	case errors.Is(err, database.ErrNotFound):
		return apperrors.NotFound("User")
	default:
		return translate(err, "find user")
	}
}

// GetAnalytics returns the visit analytics of one of the owner's templates.
func (s *Service) GetAnalytics(ctx context.Context, actor *models.User, userID string, variant models.Variant) (*models.Analytics, error) {
	if err := authorize(actor, userID, false); err != nil {
		return nil, err
	}
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "find user")
	}
	a, ok := u.Analytics(variant)
	if !ok {
		return nil, apperrors.NotFound("Template")
	}
	out := *a
	if out.Visitors == nil {
		out.Visitors = []models.Visitor{}
	}
	return &out, nil
}

package user

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portforyou/internal/apperrors"
	"portforyou/internal/dotpath"
	"portforyou/internal/models"
)

// UpdateTemplate is ApplyTemplateUpdate for the owner of id.
func (s *Service) UpdateTemplate(ctx context.Context, actor *models.User, id string, variant models.Variant, patch any) (*models.User, error) {
	if err := authorize(actor, id, false); err != nil {
		return nil, err
	}
	return s.ApplyTemplateUpdate(ctx, id, variant, patch)
}

// ApplyTemplateUpdate merges a sparse template patch into the user's
// template of the given variant. Only fields present in patch are written;
// collections are replaced wholesale. An empty patch returns the user as is.
//
// patch must be *models.ArikTemplatePatch for arik and
// *models.NovaTemplatePatch for nova. The caller's patch is never modified.
func (s *Service) ApplyTemplateUpdate(ctx context.Context, userID string, variant models.Variant, patch any) (*models.User, error) {
	prepared, err := prepareTemplatePatch(variant, patch)
	if err != nil {
		return nil, err
	}

	paths := dotpath.Flatten(variant.Field(), prepared)
	if len(paths) == 0 {
		s.logger.DebugContext(ctx, "empty template update", "user_id", userID, "template", variant)
	}
	return s.set(ctx, userID, paths)
}

// prepareTemplatePatch checks the variant's structural rules and returns a
// copy of patch ready to flatten.
func prepareTemplatePatch(variant models.Variant, patch any) (any, error) {
	switch variant {
	case models.VariantArik:
		p, ok := patch.(*models.ArikTemplatePatch)
		if !ok {
			return nil, patchTypeError(variant, patch)
		}
		if p == nil {
			return &models.ArikTemplatePatch{}, nil
		}
		return prepareArik(*p)
	case models.VariantNova:
		p, ok := patch.(*models.NovaTemplatePatch)
		if !ok {
			return nil, patchTypeError(variant, patch)
		}
		if p == nil {
			return &models.NovaTemplatePatch{}, nil
		}
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.Validation(fmt.Sprintf("Unknown template %q", variant))
}

func prepareArik(p models.ArikTemplatePatch) (*models.ArikTemplatePatch, error) {
	if p.Logos != nil && len(p.Logos) != models.ArikLogoCount {
		return nil, apperrors.Validation(fmt.Sprintf("Logos array must contain exactly %d items", models.ArikLogoCount))
	}
	if p.Work != nil {
		// Work items are addressable by id; new ones get one here.
		p.Work = slices.Clone(p.Work)
		for i := range p.Work {
			if p.Work[i].ID.IsZero() {
				p.Work[i].ID = primitive.NewObjectID()
			}
		}
	}
	return &p, nil
}

func patchTypeError(variant models.Variant, patch any) error {
	return apperrors.Internal(fmt.Sprintf("unexpected %T patch for template %s", patch, variant), nil)
}

package usecase

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/contentloom/loom/internal/domain"
)

// SaveRequest carries the context of one record save: which record, the
// raw submitted values (absence of a key is meaningful), whether the save
// is a background autosave, and the anti-forgery token issued with the
// edit form.
type SaveRequest struct {
	RecordID string
	Values   map[string]string
	Autosave bool
	Nonce    string
}

// FieldValueUsecase renders no markup itself; it owns the persistence
// side of meta-box fields.
type FieldValueUsecase struct {
	values FieldValueRepository
	nonces NonceIssuer
	auth   RecordAuthorizer
}

func NewFieldValueUsecase(values FieldValueRepository, nonces NonceIssuer, auth RecordAuthorizer) *FieldValueUsecase {
	return &FieldValueUsecase{values: values, nonces: nonces, auth: auth}
}

// Save persists the submitted values of the given meta-boxes against a
// record. A field present in the submission is sanitized and stored; a
// field absent from it has its stored value deleted (an unchecked
// checkbox arrives as absence, which means deletion, not leave-unchanged).
//
// Autosaves are ignored. A failed permission check or a stale token
// aborts the whole operation before any write. The token is consumed
// once for the whole submission.
func (uc *FieldValueUsecase) Save(ctx context.Context, boxes []domain.MetaBoxDefinition, req SaveRequest) error {
	ctx, span := tracer.Start(ctx, "FieldValue.Save")
	defer span.End()

	if req.Autosave {
		return nil
	}

	if !uc.auth.CanEdit(ctx, req.RecordID) {
		return domain.ErrPermissionDenied
	}

	ok, err := uc.nonces.Verify(ctx, domain.NonceRecordSave, req.Nonce)
	if err != nil {
		span.RecordError(err)
		return pkgerrors.Wrap(err, "FieldValue.Save: nonce verification")
	}
	if !ok {
		return domain.ErrPermissionDenied
	}

	for _, box := range boxes {
		for _, field := range box.Fields {
			value, present := req.Values[field.ID]
			if present {
				err = uc.values.Set(ctx, req.RecordID, field.ID, domain.SanitizeText(value))
			} else {
				err = uc.values.Delete(ctx, req.RecordID, field.ID)
				if errors.Is(err, domain.ErrNotFound) {
					err = nil
				}
			}
			if err != nil {
				span.RecordError(err)
				return pkgerrors.Wrapf(err, "FieldValue.Save: field %s", field.ID)
			}
		}
	}

	return nil
}

// CurrentValues loads the stored values for every field of a box. Fields
// with no stored value are simply absent from the result.
func (uc *FieldValueUsecase) CurrentValues(ctx context.Context, box domain.MetaBoxDefinition, recordID string) (map[string]string, error) {
	values := make(map[string]string)
	for _, field := range box.Fields {
		value, err := uc.values.Get(ctx, recordID, field.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "FieldValue.CurrentValues: field %s", field.ID)
		}
		values[field.ID] = value
	}
	return values, nil
}

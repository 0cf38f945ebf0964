package storage

import (
	"context"
	"time"

	"notable/pkg/models"
)

type OtpRepository struct {
	store *Store
}

func NewOtpRepository(store *Store) *OtpRepository {
	return &OtpRepository{store: store}
}

// Get returns nil without error when no record exists for the email.
func (r *OtpRepository) Get(ctx context.Context, email string) (*models.OtpRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	otps, err := r.store.loadOtps()
	if err != nil {
		return nil, err
	}
	for i := range otps {
		if otps[i].Email == email {
			rec := otps[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// Put stores a record, replacing any existing record for the same email.
func (r *OtpRepository) Put(ctx context.Context, record *models.OtpRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	otps, err := r.store.loadOtps()
	if err != nil {
		return err
	}
	kept := otps[:0]
	for _, rec := range otps {
		if rec.Email != record.Email {
			kept = append(kept, rec)
		}
	}
	kept = append(kept, *record)
	return r.store.saveOtps(kept)
}

func (r *OtpRepository) Delete(ctx context.Context, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	otps, err := r.store.loadOtps()
	if err != nil {
		return err
	}
	kept := otps[:0]
	for _, rec := range otps {
		if rec.Email != email {
			kept = append(kept, rec)
		}
	}
	return r.store.saveOtps(kept)
}

// DeleteExpired drops records past their expiry. Only run at startup so a
// stale code still reports "expired" rather than "not found" while serving.
func (r *OtpRepository) DeleteExpired(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	otps, err := r.store.loadOtps()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	kept := otps[:0]
	for _, rec := range otps {
		if rec.ExpiresAt.After(now) {
			kept = append(kept, rec)
		}
	}
	return r.store.saveOtps(kept)
}

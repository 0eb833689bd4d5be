package repository

import (
	"context"
	"errors"
	"math/rand"

	"gorm.io/gorm"

	"github.com/naniedobe1/PoleBrothers/models"
)

const usernameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomUsername generates the 16-character alphanumeric display name a
// fresh profile starts with.
func RandomUsername() string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = usernameChars[rand.Intn(len(usernameChars))]
	}
	return string(b)
}

// FetchOrCreateProfile returns this device's profile, creating it with a
// random username on first access.
//
// The lookup-then-insert is not atomic: two simultaneous first launches on
// the same device could race. The unique index on taker_id turns the loser
// into an insert error instead of a duplicate row; with device-scoped
// identifiers the race is accepted rather than locked around.
func (s *Store) FetchOrCreateProfile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("taker_id = ?", s.takerID).First(&profile).Error
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserProfile{}, err
	}

	profile = models.UserProfile{
		TakerID:   s.takerID,
		TakerName: RandomUsername(),
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

// UpdateUsername sets this device's display name.
func (s *Store) UpdateUsername(ctx context.Context, name string) (Outcome, error) {
	res := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("taker_id = ?", s.takerID).
		Update("taker_name", name)
	return writeOutcome(res, "update username")
}

// UpdateProfilePicture sets this device's profile picture URL. The picture
// goes through the same upload pipeline as pole captures.
func (s *Store) UpdateProfilePicture(ctx context.Context, url string) (Outcome, error) {
	res := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("taker_id = ?", s.takerID).
		Update("profile_pic_url", url)
	return writeOutcome(res, "update profile picture")
}

// AngelaMos | 2026
// recovery.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelamos/artisan-market/internal/core"
)

// Knowledge-based password recovery: the caller proves identity with
// name, date of birth, and two security answers instead of an emailed
// token. Both steps are rate limited at the handler.

func (s *Service) LookupSecurityQuestions(
	ctx context.Context,
	email string,
) ([]string, error) {
	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup questions: %w", err)
	}

	if !user.HasSecurityQuestions() {
		return nil, core.RecoveryNotConfiguredError()
	}

	return []string{*user.SecurityQuestion1, *user.SecurityQuestion2}, nil
}

// RecoverPassword runs the verification chain in order and stops at
// the first failing check. On success the new password is persisted,
// the forced-rotation flag cleared, and every session revoked.
func (s *Service) RecoverPassword(
	ctx context.Context,
	req RecoveryResetRequest,
) error {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("recover password: %w", err)
	}

	if !strings.EqualFold(req.FirstName, user.FirstName) ||
		!strings.EqualFold(req.LastName, user.LastName) {
		return core.RecoveryMismatchError("name does not match our records")
	}

	if req.DateOfBirth != "" && user.DateOfBirth != nil {
		dob, parseErr := time.Parse("2006-01-02", req.DateOfBirth)
		if parseErr != nil {
			return core.ValidationError("date_of_birth must be YYYY-MM-DD")
		}
		if !sameCalendarDate(dob, *user.DateOfBirth) {
			return core.RecoveryMismatchError(
				"date of birth does not match our records",
			)
		}
	}

	if !user.HasSecurityQuestions() {
		return core.RecoveryNotConfiguredError()
	}

	ok, err := core.VerifyAnswer(req.Answer1, *user.SecurityAnswerHash1)
	if err != nil {
		return fmt.Errorf("verify answer: %w", err)
	}
	if !ok {
		return core.RecoveryMismatchError("security answer is incorrect")
	}

	ok, err = core.VerifyAnswer(req.Answer2, *user.SecurityAnswerHash2)
	if err != nil {
		return fmt.Errorf("verify answer: %w", err)
	}
	if !ok {
		return core.RecoveryMismatchError("security answer is incorrect")
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.ResetPassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.LogoutAll(ctx, user.ID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	return nil
}

func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

package service

import "errors"

var (
	// ErrGroupNotFound indicates the group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrInviteNotFound indicates no group matches the invite code.
	ErrInviteNotFound = errors.New("invite code not found")
	// ErrSubmissionNotFound indicates the submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrContentNotFound indicates the day has no content record.
	ErrContentNotFound = errors.New("day content not found")
	// ErrNotMember indicates the caller does not belong to the group.
	ErrNotMember = errors.New("not a member of this group")
	// ErrNotSupervisor indicates the caller lacks the supervisor role.
	ErrNotSupervisor = errors.New("supervisor role required")
	// ErrGroupFull indicates the group reached its player limit.
	ErrGroupFull = errors.New("group is full")
	// ErrNameTaken indicates the display name is already used in the group.
	ErrNameTaken = errors.New("display name already taken in this group")
	// ErrDayLocked indicates the day's submission window has closed.
	ErrDayLocked = errors.New("day is no longer editable")
	// ErrEmptyReason indicates an override was attempted without a reason.
	ErrEmptyReason = errors.New("override reason must not be empty")
	// ErrOutsideChallenge indicates today falls outside the 30-day run.
	ErrOutsideChallenge = errors.New("no challenge day today")
	// ErrSeedTokenInvalid indicates a seed request without the operator token.
	ErrSeedTokenInvalid = errors.New("invalid seed token")
	// ErrSeedPayload indicates the seed payload failed schema validation.
	ErrSeedPayload = errors.New("seed payload rejected by schema")
)

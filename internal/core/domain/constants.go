package domain

import "errors"

var (
	ErrSendingReplyFailed   = errors.New("failed to send reply")
	ErrEmptyName            = errors.New("command name must not be empty")
	ErrEmptyDescription     = errors.New("command description must not be empty")
	ErrInvalidAttachmentURL = errors.New("attachment is not an http(s) url")
	ErrCommandNotFound      = errors.New("command not found")
	ErrModalTimeout         = errors.New("modal was not submitted in time")
	ErrNoAdmins             = errors.New("no admins configured")
)

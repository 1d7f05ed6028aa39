package services

import "time"

// SetPick replaces the reply picker of a chat service.
func (s *ChatService) SetPick(pick func(n int) int) { s.pick = pick }

// SetNow replaces the clock of a rental service.
func (s *RentalService) SetNow(now func() time.Time) { s.now = now }

// ReplyPool exposes the assistant replies.
var ReplyPool = replyPool

// Sweep runs one idle session sweep of a chat service as of now.
func (s *ChatService) Sweep(now time.Time) int { return s.sweep(now) }

// Sweep runs one retention sweep of a detection service as of now.
func (s *DetectionService) Sweep(now time.Time) int { return s.sweep(now) }

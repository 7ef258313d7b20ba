// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package notify delivers action item notifications to assignees.
package notify

import (
	"context"
	"log/slog"

	"github.com/poiesic/minuteman/core"
)

// Status is the delivery outcome of a notification.
type Status string

const (
	// StatusSent indicates the notification was delivered.
	StatusSent Status = "sent"
	// StatusFailed indicates the notification could not be delivered.
	StatusFailed Status = "failed"
)

// Notification carries one action item to its assignee.
type Notification struct {
	RecipientEmail string
	RecipientName  string
	Item           core.ActionItem
	MeetingSummary string
}

// Dispatcher sends notifications. Implementations must be safe for
// concurrent use.
type Dispatcher interface {
	// Send delivers a single notification and reports its status.
	Send(ctx context.Context, n Notification) (Status, error)
}

// LogDispatcher writes notifications to the log instead of delivering
// them. It stands in for a real email integration.
type LogDispatcher struct {
	logger *slog.Logger
}

var _ Dispatcher = (*LogDispatcher)(nil)

// NewLogDispatcher creates a dispatcher that logs each notification.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{
		logger: logger.With("component", "notify"),
	}
}

// Send logs the notification and always reports it as sent.
func (d *LogDispatcher) Send(ctx context.Context, n Notification) (Status, error) {
	d.logger.Info("action item notification",
		"to", n.RecipientEmail,
		"name", n.RecipientName,
		"item", n.Item.Id,
		"description", n.Item.Description,
		"priority", n.Item.Priority,
		"deadline", n.Item.Deadline,
	)
	return StatusSent, nil
}

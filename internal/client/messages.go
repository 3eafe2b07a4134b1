package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/patrickmn/go-cache"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/models"
	"github.com/insightdelivered/hl-client/internal/scraper"
)

// MessageService reads the secure messaging inbox.
type MessageService struct {
	client *Client
}

// Inbox lists messages, optionally filtered by year and month. A month
// needs a year.
func (s *MessageService) Inbox(ctx context.Context, year, month *int) ([]models.Message, error) {
	if year == nil && month != nil {
		return nil, common.InvalidArgument("month", "a month can only be selected with a year")
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, common.InvalidArgument("month", fmt.Sprintf("%d is not a month", *month))
	}

	y, m := -1, -1
	if year != nil {
		y = *year
	}
	if month != nil {
		m = *month
	}

	doc, err := s.client.page(ctx, fmt.Sprintf("secure_messaging/inbox?year=%d&month=%d", y, m), "", "")
	if err != nil {
		return nil, err
	}
	return scraper.ListMessages(doc)
}

// Get fetches one message with its body. Messages never change once sent,
// so they are served from the cache when possible.
func (s *MessageService) Get(ctx context.Context, id int) (models.Message, error) {
	key := strconv.Itoa(id)
	if s.client.messages != nil {
		if cached, ok := s.client.messages.Get(key); ok {
			return cached.(models.Message), nil
		}
	}

	doc, err := s.client.page(ctx, "secure_messaging/view/message/"+key, "message", key)
	if err != nil {
		return models.Message{}, err
	}
	m, err := scraper.GetMessage(doc, id)
	if err != nil {
		return models.Message{}, err
	}

	if s.client.messages != nil {
		s.client.messages.Set(key, m, cache.DefaultExpiration)
	}
	return m, nil
}

// Package cache keeps recently read tickets in Redis in front of the
// ticket service. Entry keys carry a per-ticket generation that is bumped on
// every update or delete, so a read that raced a write can only store its
// view under a generation nobody reads any more.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/ticketing-service/internal/dto"
	"github.com/Eursukkul/ticketing-service/internal/models"
	"github.com/Eursukkul/ticketing-service/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "ticket"

type TicketCache struct {
	next service.TicketService
	rdb  *redis.Client
	ttl  time.Duration
}

// NewTicketCache wraps next. A nil client returns next unchanged.
func NewTicketCache(next service.TicketService, rdb *redis.Client, ttl time.Duration) service.TicketService {
	if rdb == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &TicketCache{next: next, rdb: rdb, ttl: ttl}
}

func generationKey(id uint) string {
	return fmt.Sprintf("%s:%d:gen", keyPrefix, id)
}

func ticketKey(id uint, gen int64, withDetails bool) string {
	if withDetails {
		return fmt.Sprintf("%s:%d:g%d:details", keyPrefix, id, gen)
	}
	return fmt.Sprintf("%s:%d:g%d", keyPrefix, id, gen)
}

func (c *TicketCache) CreateTicket(ctx context.Context, show string, user *string, price decimal.NullDecimal) (uint, error) {
	return c.next.CreateTicket(ctx, show, user, price)
}

func (c *TicketCache) GetTicket(ctx context.Context, id uint, opts ...service.ReadOption) (*models.Ticket, error) {
	gen, err := c.rdb.Get(ctx, generationKey(id)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("[cache] get generation of ticket %d failed: %v", id, err)
		return c.next.GetTicket(ctx, id, opts...)
	}
	key := ticketKey(id, gen, service.ApplyReadOptions(opts))

	bs, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ticket models.Ticket
		if jsonErr := json.Unmarshal(bs, &ticket); jsonErr == nil {
			return &ticket, nil
		}
		log.Printf("[cache] discarding undecodable entry %s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("[cache] get %s failed: %v", key, err)
	}

	ticket, err := c.next.GetTicket(ctx, id, opts...)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ticket); err == nil {
		if err := c.rdb.SetEx(ctx, key, payload, c.ttl).Err(); err != nil {
			log.Printf("[cache] set %s failed: %v", key, err)
		}
	}
	return ticket, nil
}

func (c *TicketCache) ListTicketsForShow(ctx context.Context, show string) ([]models.Ticket, error) {
	return c.next.ListTicketsForShow(ctx, show)
}

func (c *TicketCache) UpdateTicket(ctx context.Context, id uint, p dto.TicketPatch) (bool, error) {
	ok, err := c.next.UpdateTicket(ctx, id, p)
	if ok {
		c.invalidate(ctx, id)
	}
	return ok, err
}

func (c *TicketCache) DeleteTicket(ctx context.Context, id uint) (bool, error) {
	ok, err := c.next.DeleteTicket(ctx, id)
	if ok {
		c.invalidate(ctx, id)
	}
	return ok, err
}

// invalidate moves the ticket to a new generation. Entries under older
// generations are never read again and expire with their TTL. The generation
// key outlives any entry written under it.
func (c *TicketCache) invalidate(ctx context.Context, id uint) {
	key := generationKey(id)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		log.Printf("[cache] invalidate ticket %d failed: %v", id, err)
		return
	}
	if err := c.rdb.Expire(ctx, key, 2*c.ttl).Err(); err != nil {
		log.Printf("[cache] expire generation of ticket %d failed: %v", id, err)
	}
}

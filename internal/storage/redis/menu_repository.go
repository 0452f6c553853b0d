// Package redis хранит меню в Redis: список идентификаторов задаёт порядок
// добавления, а каждое блюдо лежит отдельным JSON-значением.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

const (
	// DefaultPrefix используется, если префикс ключей не задан.
	DefaultPrefix = "menu"

	opTimeout = 2 * time.Second
)

// addScript атомарно создаёт запись и дописывает ID в конец списка.
var addScript = goredis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[2])
return 1
`)

// removeScript атомарно удаляет запись и её позицию в списке.
var removeScript = goredis.NewScript(`
if redis.call('DEL', KEYS[1]) == 0 then
	return 0
end
redis.call('LREM', KEYS[2], 0, ARGV[1])
return 1
`)

type menuRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Course      string    `json:"course"`
	CreatedAt   time.Time `json:"created_at"`
}

type menuRepository struct {
	client goredis.UniversalClient
	prefix string
}

// NewMenuRepository создаёт Redis-реализацию MenuRepository.
func NewMenuRepository(client goredis.UniversalClient, prefix string) domain.MenuRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &menuRepository{client: client, prefix: prefix}
}

func (r *menuRepository) orderKey() string {
	return r.prefix + ":order"
}

func (r *menuRepository) itemKey(id string) string {
	return r.prefix + ":item:" + id
}

func (r *menuRepository) Add(ctx context.Context, item domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	payload, err := json.Marshal(toRecord(item))
	if err != nil {
		return fmt.Errorf("marshal menu item: %w", err)
	}

	created, err := addScript.Run(ctx, r.client, []string{r.itemKey(item.ID), r.orderKey()}, payload, item.ID).Int()
	if err != nil {
		return fmt.Errorf("add menu item: %w", err)
	}
	if created == 0 {
		return domain.ErrMenuItemExists
	}
	return nil
}

func (r *menuRepository) Get(ctx context.Context, id string) (domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.itemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.MenuItem{}, domain.ErrMenuItemNotFound
		}
		return domain.MenuItem{}, fmt.Errorf("get menu item: %w", err)
	}
	return decodeItem(raw)
}

func (r *menuRepository) Remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	removed, err := removeScript.Run(ctx, r.client, []string{r.itemKey(id), r.orderKey()}, id).Int()
	if err != nil {
		return fmt.Errorf("remove menu item: %w", err)
	}
	if removed == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *menuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ids, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list menu order: %w", err)
	}
	items := make([]domain.MenuItem, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.itemKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Запись удалена между LRANGE и MGET.
			continue
		}
		item, err := decodeItem([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("menu item %s: %w", ids[i], err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *menuRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := r.client.LLen(ctx, r.orderKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return int(n), nil
}

func toRecord(item domain.MenuItem) menuRecord {
	return menuRecord{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Course:      string(item.Course),
		CreatedAt:   item.CreatedAt,
	}
}

func decodeItem(raw []byte) (domain.MenuItem, error) {
	var rec menuRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.MenuItem{}, fmt.Errorf("decode menu item: %w", err)
	}
	return domain.MenuItem{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Course:      domain.Course(rec.Course),
		CreatedAt:   rec.CreatedAt,
	}, nil
}

var _ domain.MenuRepository = (*menuRepository)(nil)

package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

// menuRepositoryInMemory хранит блюда в порядке добавления.
type menuRepositoryInMemory struct {
	mu    sync.RWMutex
	items []domain.MenuItem
	index map[string]int
}

// NewMenuRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewMenuRepository() domain.MenuRepository {
	return &menuRepositoryInMemory{index: make(map[string]int)}
}

// Add добавляет блюдо в конец коллекции, если ID ещё не занят.
func (r *menuRepositoryInMemory) Add(_ context.Context, item domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[item.ID]; exists {
		return domain.ErrMenuItemExists
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

// Get возвращает блюдо или ErrMenuItemNotFound.
func (r *menuRepositoryInMemory) Get(_ context.Context, id string) (domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return r.items[pos], nil
}

// Remove удаляет блюдо, сохраняя относительный порядок остальных.
func (r *menuRepositoryInMemory) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return domain.ErrMenuItemNotFound
	}

	r.items = append(r.items[:pos], r.items[pos+1:]...)
	delete(r.index, id)
	// Позиции хвоста сдвинулись на один элемент.
	for i := pos; i < len(r.items); i++ {
		r.index[r.items[i].ID] = i
	}
	return nil
}

// List возвращает копию коллекции, чтобы вызывающий не видел последующих изменений.
func (r *menuRepositoryInMemory) List(_ context.Context) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.MenuItem, len(r.items))
	copy(result, r.items)
	return result, nil
}

// Count возвращает размер коллекции.
func (r *menuRepositoryInMemory) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

var _ domain.MenuRepository = (*menuRepositoryInMemory)(nil)

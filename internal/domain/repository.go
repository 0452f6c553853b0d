package domain

import "context"

// MenuRepository описывает требования к хранилищу меню.
// Порядок добавления сохраняется: по нему определяются последние блюда.
type MenuRepository interface {
	// Add добавляет блюдо в конец коллекции. Возвращает ErrMenuItemExists, если ID уже занят.
	Add(ctx context.Context, item MenuItem) error
	// Get возвращает блюдо по идентификатору или ErrMenuItemNotFound.
	Get(ctx context.Context, id string) (MenuItem, error)
	// Remove удаляет блюдо. Возвращает ErrMenuItemNotFound, если его нет.
	Remove(ctx context.Context, id string) error
	// List возвращает снимок коллекции в порядке добавления. Вызывающий может свободно менять срез.
	List(ctx context.Context) ([]MenuItem, error)
	// Count возвращает текущий размер коллекции.
	Count(ctx context.Context) (int, error)
}

// Package menu содержит чистые вычисления над снимком меню: агрегаты,
// фильтрацию по разделу и форматирование цен.
//
// Функции пакета не хранят состояние и никогда не изменяют переданный срез.
package menu
